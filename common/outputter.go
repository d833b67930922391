package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

const JSONOutputFlag = "json"

type ICommandResult interface {
	GetOutput() string
}

type OutputFormatter interface {
	io.Writer
	SetError(err error)
	SetCommandResult(result ICommandResult)
	WriteOutput()
}

// InitializeOutputter picks json or plain text output depending on the persistent json flag
func InitializeOutputter(cmd *cobra.Command) OutputFormatter {
	if shouldOutputJSON(cmd) {
		return newJSONOutput(os.Stdout, os.Stderr)
	}

	return newCLIOutput(os.Stdout, os.Stderr)
}

func shouldOutputJSON(cmd *cobra.Command) bool {
	flag := cmd.Flag(JSONOutputFlag)

	return flag != nil && flag.Value.String() == "true"
}

type commonOutputFormatter struct {
	errorOutput   error
	commandOutput ICommandResult
	buffer        bytes.Buffer
	stdout        io.Writer
	stderr        io.Writer
}

func (c *commonOutputFormatter) SetError(err error) {
	c.errorOutput = err
}

func (c *commonOutputFormatter) SetCommandResult(result ICommandResult) {
	c.commandOutput = result
}

func (c *commonOutputFormatter) Write(p []byte) (int, error) {
	return c.buffer.Write(p)
}

type cliOutput struct {
	commonOutputFormatter
}

func newCLIOutput(stdout, stderr io.Writer) *cliOutput {
	return &cliOutput{
		commonOutputFormatter: commonOutputFormatter{stdout: stdout, stderr: stderr},
	}
}

func (cli *cliOutput) WriteOutput() {
	if cli.buffer.Len() > 0 {
		_, _ = fmt.Fprintln(cli.stdout, cli.buffer.String())
		cli.buffer.Reset()
	}

	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(cli.stderr, cli.errorOutput.Error())

		return
	}

	if cli.commandOutput != nil {
		_, _ = fmt.Fprint(cli.stdout, cli.commandOutput.GetOutput())
	}
}

type jsonOutput struct {
	commonOutputFormatter
}

func newJSONOutput(stdout, stderr io.Writer) *jsonOutput {
	return &jsonOutput{
		commonOutputFormatter: commonOutputFormatter{stdout: stdout, stderr: stderr},
	}
}

func (jo *jsonOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(jo.stderr, jo.errorOutput.Error())

		return
	}

	if jo.commandOutput == nil {
		return
	}

	bytes, err := json.MarshalIndent(jo.commandOutput, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintln(jo.stderr, err.Error())

		return
	}

	_, _ = fmt.Fprintln(jo.stdout, string(bytes))
}

// FormatKV renders "key|value" rows as aligned columns
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// FormatList renders "a|b|c" rows as aligned columns
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}
