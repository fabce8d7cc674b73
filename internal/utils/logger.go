package utils

import (
	"log"
	"os"
)

func GetLogger() *log.Logger {
	return log.New(os.Stdout, "poolledger ", log.Ldate|log.Ltime|log.Lmsgprefix)
}
