package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

func Check(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panicln(err)
	}
}

// Warn prints a non fatal error in yellow
func Warn(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Yellow)
		log.Print(msg+": "+err.Error(), chalk.Reset)
	}
}
