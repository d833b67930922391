package common

import "github.com/spf13/cobra"

type CliCommandExecutor interface {
	Execute() (ICommandResult, error)
}

// GetCliRunCommand runs executor and writes its result or error with the command outputter
func GetCliRunCommand(executor CliCommandExecutor) func(cmd *cobra.Command, _ []string) {
	return func(cmd *cobra.Command, _ []string) {
		outputter := InitializeOutputter(cmd)
		defer outputter.WriteOutput()

		result, err := executor.Execute()
		if err != nil {
			outputter.SetError(err)

			return
		}

		outputter.SetCommandResult(result)
	}
}
