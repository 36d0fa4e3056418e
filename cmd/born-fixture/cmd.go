package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/born-fixture/internal/fixture"
	"github.com/born-ml/born-fixture/internal/logger"
	"github.com/born-ml/born-fixture/internal/onnx"
)

const version = "v0.1.0"

// NewCLI creates the root command. Command output goes to out.
func NewCLI(out io.Writer) *cobra.Command {
	cfg := fixture.DefaultConfig()
	var (
		output    string
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:           "born-fixture",
		Short:         "Write the synthetic ONNX test model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Setup(logLevel, logFormat)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := fixture.BuildAndSave(output, cfg); err != nil {
				return err
			}
			fmt.Fprintln(out, fixture.SuccessMessage)
			return nil
		},
	}
	rootCmd.SetOut(out)

	rootCmd.Flags().StringVarP(&output, "output", "o", fixture.DefaultPath, "Path of the model file to write")
	addVocabSizeFlag(rootCmd, &cfg)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(
		newInspectCmd(out),
		newVerifyCmd(out, &cfg),
		newVersionCmd(out),
	)
	return rootCmd
}

func addVocabSizeFlag(cmd *cobra.Command, cfg *fixture.Config) {
	cmd.Flags().Int64Var(&cfg.VocabSize, "vocab-size", cfg.VocabSize, "Trailing dimension of the output tensor")
}

func newInspectCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the graph declared by an ONNX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			model, err := onnx.ParseFile(args[0])
			if err != nil {
				return err
			}
			return printModel(out, model)
		},
	}
}

func newVerifyCmd(out io.Writer, cfg *fixture.Config) *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check that a file declares the fixture graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := fixture.DefaultPath
			if len(args) > 0 {
				path = args[0]
			}
			if err := fixture.Verify(path, *cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s matches the fixture\n", path)
			return nil
		},
	}
	addVocabSizeFlag(verifyCmd, cfg)
	return verifyCmd
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(out, "born-fixture %s\n", version)
		},
	}
}

func printModel(out io.Writer, model *onnx.ModelProto) error {
	info, err := onnx.InfoFromProto(model)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Graph:    %s\n", info.GraphName)
	fmt.Fprintf(out, "IR:       %d\n", info.IRVersion)
	fmt.Fprintf(out, "Opset:    %d\n", info.OpsetVersion)
	fmt.Fprintf(out, "Producer: %s %s\n", info.ProducerName, info.ProducerVersion)
	fmt.Fprintf(out, "Nodes:    %d (%s)\n\n", info.NodeCount, strings.Join(info.Operators, ", "))

	if model.Graph == nil {
		return nil
	}

	var rows [][]string
	for i := range model.Graph.Inputs {
		rows = append(rows, valueRow("input", &model.Graph.Inputs[i]))
	}
	for i := range model.Graph.Outputs {
		rows = append(rows, valueRow("output", &model.Graph.Outputs[i]))
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"KIND", "NAME", "TYPE", "SHAPE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func valueRow(kind string, vi *onnx.ValueInfoProto) []string {
	if vi.Type == nil || vi.Type.TensorType == nil {
		return []string{kind, vi.Name, "?", "?"}
	}
	tt := vi.Type.TensorType
	return []string{kind, vi.Name, onnx.ElemTypeName(tt.ElemType), onnx.FormatShape(tt.Shape)}
}
