package main

import (
	"os"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
