package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var configed bool = false

const DbFileName = "sgallery.db"

func InitConfig() error {
	if configed {
		return nil
	}
	return NewConfig("config")
}

// NewConfig reads the named yaml config. Used directly by tests that
// need a config other than the default one
func NewConfig(name string) error {
	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.sgallery")
	viper.AddConfigPath("/etc/sgallery")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../..")

	err := viper.ReadInConfig()
	configed = true
	return err
}

func DbPath() string {
	if p := viper.GetString("db.path"); p != "" {
		return p
	}
	return ServicePath(DbFileName)
}

func ServerPort() int {
	return viper.GetInt("server.port")
}

func ServerHost() string {
	return viper.GetString("server.host")
}

func ServerAddr() string {
	return fmt.Sprintf("%s:%d", ServerHost(), ServerPort())
}

func ServerPrefix() string {
	return viper.GetString("server.prefix")
}

func ServiceRoot() string {
	root := viper.GetString("service.root")
	if expanded, err := homedir.Expand(root); err == nil {
		return expanded
	}
	return root
}

func ServicePath(fileName string) string {
	return filepath.Join(ServiceRoot(), fileName)
}

func ExportDir() string {
	if dir := viper.GetString("service.exportDir"); dir != "" {
		if expanded, err := homedir.Expand(dir); err == nil {
			return expanded
		}
		return dir
	}
	return ServicePath("export")
}
