package cmd

import (
	"fmt"
	"os"
)

// check prints err and exits the process if err is non-nil.
func check(err error) {
	if err != nil {
		fmt.Printf("error, %v\n", err)
		os.Exit(-1)
	}
}
