package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/abi-codec/abi"
	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/pipeline"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

var (
	abiPath  string
	funcName string
	verbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "abicall",
	Short: "Typed codec CLI for contract calls",
	Long: `abicall encodes literal arguments into packed call payloads and decodes
returned buffers back into literals, driven by a contract ABI document.

It never executes anything: the assembled selector and payload are meant to
be handed to an execution environment.`,
	Version: fmt.Sprintf("%s (built %s)", version, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger, err := zap.NewDevelopment()
			if err == nil {
				pipeline.SetLogger(logger)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&abiPath, "abi", "", "Path to the ABI document (JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	encodeCmd.Flags().StringVar(&funcName, "func", "", "Function to encode arguments for")
	decodeCmd.Flags().StringVar(&funcName, "func", "", "Function whose result to decode")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(interactiveCmd)
}

func loadDocument() (*abi.Document, error) {
	if abiPath == "" {
		return nil, fmt.Errorf("--abi is required")
	}
	data, err := os.ReadFile(abiPath)
	if err != nil {
		return nil, err
	}
	return abi.Load(data)
}

func lookupFunction() (*abi.Function, error) {
	doc, err := loadDocument()
	if err != nil {
		return nil, err
	}
	if funcName == "" {
		return nil, fmt.Errorf("--func is required")
	}
	return doc.Function(funcName)
}

var encodeCmd = &cobra.Command{
	Use:   "encode [literals...]",
	Short: "Assemble a call payload from literal arguments",
	Long: `Encode one literal per declared parameter, in declaration order, and print
the function selector and packed payload as hex.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := lookupFunction()
		if err != nil {
			return err
		}

		call, err := pipeline.NewArgumentPipeline(fn).Assemble(args)
		if err != nil {
			return err
		}

		fmt.Printf("Function:  %s\n", fn.Signature())
		fmt.Printf("Selector:  0x%s\n", hex.EncodeToString(call.Selector[:]))
		fmt.Printf("Payload:   0x%s\n", hex.EncodeToString(call.Payload))
		fmt.Printf("Size:      %d bytes\n", len(call.Payload))
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Render a returned buffer as a literal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := lookupFunction()
		if err != nil {
			return err
		}

		data, err := hex.DecodeString(trimHexPrefix(args[0]))
		if err != nil {
			return err
		}

		out, err := pipeline.NewResultPipeline(fn).Render(data)
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List declared functions and their layouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			return err
		}

		analyzer := codec.NewLayoutAnalyzer()
		for _, fn := range doc.Functions() {
			sel := pipeline.Selector(fn)
			fmt.Printf("%s  0x%s\n", fn.Signature(), hex.EncodeToString(sel[:]))
			for _, p := range fn.Params {
				fmt.Printf("  %-12s %s\n", p.Name, describeLayout(analyzer, p.Type))
			}
			fmt.Printf("  %-12s %s\n", "->", describeLayout(analyzer, fn.Output))
		}
		return nil
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactively build call payloads with a TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		return runInteractive(abiPath, doc)
	},
}

func describeLayout(a *codec.LayoutAnalyzer, t *codec.TypeDesc) string {
	info := a.Analyze(t)
	desc := fmt.Sprintf("%-16s native=%d wire=%d", t.Signature(), info.NativeSize, info.EncodedSize)
	if info.Dynamic {
		desc += "+ (dynamic)"
	}
	switch {
	case info.TrivialDecode:
		desc += " [trivial encode+decode]"
	case info.TrivialEncode:
		desc += " [trivial encode]"
	}
	return desc
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
