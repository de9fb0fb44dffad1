package config

import (
	"github.com/gyanvix/employee-admin/library/pg"
	"github.com/gyanvix/employee-admin/library/yamlenv"
)

type Config struct {
	App      AppConfig         `yaml:"app"`
	HTTP     HTTPConfig        `yaml:"http"`
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
}

type AppConfig struct {
	Env *yamlenv.Env[string] `yaml:"env"`
}

type HTTPConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
}

type KafkaConfig struct {
	Bootstrap *yamlenv.Env[string] `yaml:"bootstrap"`
	Topic     *yamlenv.Env[string] `yaml:"topic"`
}

// Development reports whether error detail may be exposed to callers.
func (a AppConfig) Development() bool {
	return a.Env != nil && a.Env.Value == "development"
}

// Enabled reports whether the audit producer should be started.
func (k KafkaConfig) Enabled() bool {
	return k.Bootstrap != nil && k.Bootstrap.Value != ""
}
