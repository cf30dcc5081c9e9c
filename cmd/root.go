/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"
	"os"

	"isokml/internal/domain"
	"isokml/internal/export"
	"isokml/internal/version"
	"isokml/pkg/logger"

	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd 不带子命令时以默认参数快速转换给定的文件或目录。
var rootCmd = &cobra.Command{
	Use:     "isokml [input-paths...]",
	Short:   "网格数据转等值面 KML 工具",
	Long:    "ISOKML 将 (x, y, value) 网格数据转换为按等值面分层、嵌套的 KML 文档，并生成配套的色带图例 KML。",
	Args:    cobra.MinimumNArgs(1),
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Log().Info("正在以默认配置快速处理...", "inputs", len(args))
		exporter, err := export.NewExporter(export.ConvertConfig{
			InputPaths: args,
			Depth:      0,
			Options:    domain.DefaultOptions(),
		})
		if err != nil {
			return fmt.Errorf("创建转换器失败: %w", err)
		}
		if err := exporter.Execute(); err != nil {
			logger.Log().Error("转换失败", "error", err)
			return err
		}
		logger.Log().Info("转换成功完成！", "files", len(exporter.Results))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
}
