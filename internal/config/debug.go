package config

import "os"

func IsDebug() bool {
	return os.Getenv("BONDTRACK_DEBUG") == "1"
}
