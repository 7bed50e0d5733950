package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type ConfigSchema struct {
	Database struct {
		Driver   string     `yaml:"driver"` // "postgres" or "sqlite"
		Path     string     `yaml:"path"`   // sqlite only
		Master   DBConfig   `yaml:"master"`
		Replicas []DBConfig `yaml:"replicas"`
	} `yaml:"db"`
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Session struct {
		Store    string `yaml:"store"` // "db" or "redis"
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"session"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	conf := &ConfigSchema{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return err
	}
	applyDefaults(conf)
	AppConfig = conf
	return nil
}

func applyDefaults(conf *ConfigSchema) {
	if conf.Database.Driver == "" {
		conf.Database.Driver = "postgres"
	}
	if conf.Backend.Port == 0 {
		conf.Backend.Port = 8080
	}
	if conf.Session.Store == "" {
		conf.Session.Store = "db"
	}
	if conf.Session.TTLHours == 0 {
		conf.Session.TTLHours = 30 * 24
	}
}
