package cli

import (
	"fwdash/app"
)

// ConfigToAppConfig converts a CLI Config to an app.Config
func ConfigToAppConfig(cliConfig *Config) *app.Config {
	return &app.Config{
		LogDir:            cliConfig.LogDir,
		DaysBack:          cliConfig.DaysBack,
		SchemaPath:        cliConfig.SchemaPath,
		Workers:           cliConfig.Workers,
		TopN:              cliConfig.TopN,
		NumericPriorities: cliConfig.NumericPriorities,
		EventsPath:        cliConfig.EventsPath,
		SourcesPath:       cliConfig.SourcesPath,
		ExportFormat:      cliConfig.ExportFormat,
		ExportPath:        cliConfig.ExportPath,
		Verbose:           cliConfig.Verbose,
		Silent:            cliConfig.Silent,
	}
}
