package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/pcquote/pkg/compat"
	"github.com/spf13/cobra"
)

// CLI-приложение для проверки совместимости смет из файлов.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotecheck",
		Short:         "Check PC-part quotes for compatibility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(os.Stdin, os.Stdout, os.Stderr))
	return root
}

func newCheckCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		inputPath string
		formatStr string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run compatibility checks over quotes in a .json or .jsonl file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runCheck(ctx, inputPath, compat.InputFormat(formatStr), stdin, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	cmd.Flags().StringVar(&formatStr, "format", string(compat.FormatAuto), "input format: auto|json|jsonl")
	return cmd
}

func runCheck(ctx context.Context, inputPath string, format compat.InputFormat, stdin io.Reader, stdout, stderr io.Writer) error {
	checker := compat.NewChecker()

	var (
		summary string
		err     error
	)
	// stdin вариант: считаем, что jsonl
	if inputPath == "" {
		var res compat.FileResult
		res, err = compat.CheckReader(ctx, checker, stdin, format, stdout)
		summary = res.Summary()
	} else {
		summary, err = compat.CheckFile(ctx, checker, inputPath, format, stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "check: %v (%s)\n", err, summary)
		return err
	}
	fmt.Fprintf(stderr, "check ok (%s)\n", summary)
	return nil
}
