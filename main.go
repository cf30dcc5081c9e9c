/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package main

import (
	"isokml/cmd"
)

func main() {
	cmd.Execute()
}

// go build -ldflags="-s -w -X 'isokml/internal/version.Version=v1.0.0' -X 'isokml/internal/version.Commit=$(git rev-parse HEAD)' -X 'isokml/internal/version.BuildDate=$(date +%Y-%m-%d_%H:%M:%S)'" -o release/isokml .
