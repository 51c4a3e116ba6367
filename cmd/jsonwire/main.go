// Command jsonwire inspects JSON and JSON-RPC 2.0 text.
//
//	jsonwire --mode fmt [--indent "  "] [file]       reformat a document
//	jsonwire --mode validate [file]                  syntax check
//	jsonwire --mode rpc --kind request [file]        run the message pipeline
//
// Input comes from the file argument or stdin. --jsonc strips comments and
// trailing commas before parsing. Defaults come from --config (YAML) or
// JSONWIRE_* environment variables.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"mcpist/jsonwire/pkg/jsonrpc"
	"mcpist/jsonwire/pkg/jsonstream"
)

type config struct {
	Mode   string `yaml:"mode"`
	Kind   string `yaml:"kind"`
	Indent string `yaml:"indent"`
	JSONC  bool   `yaml:"jsonc"`
}

func main() {
	configPath := pflag.String("config", "", "YAML config file with defaults")
	mode := pflag.String("mode", "", "fmt, validate, or rpc")
	kind := pflag.String("kind", "", "rpc mode: request or response")
	indent := pflag.String("indent", "", "fmt mode: pretty-print with this indent")
	useJSONC := pflag.Bool("jsonc", false, "strip comments and trailing commas before parsing")
	pflag.Parse()

	cfg := config{
		Mode: envOr("JSONWIRE_MODE", "fmt"),
		Kind: envOr("JSONWIRE_KIND", "request"),
	}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if pflag.CommandLine.Changed("mode") {
		cfg.Mode = *mode
	}
	if pflag.CommandLine.Changed("kind") {
		cfg.Kind = *kind
	}
	if pflag.CommandLine.Changed("indent") {
		cfg.Indent = *indent
	}
	if pflag.CommandLine.Changed("jsonc") {
		cfg.JSONC = *useJSONC
	}

	data, err := readInput(pflag.Args())
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if cfg.JSONC {
		data = jsonc.ToJSON(data)
	}

	switch cfg.Mode {
	case "fmt":
		os.Exit(runFmt(data, cfg.Indent))
	case "validate":
		os.Exit(runValidate(data))
	case "rpc":
		os.Exit(runRPC(data, cfg.Kind))
	default:
		log.Printf("Unknown mode %q (want fmt, validate, or rpc)", cfg.Mode)
		os.Exit(2)
	}
}

func runFmt(data []byte, indent string) int {
	v, err := jsonstream.ParseBytes(data)
	if err != nil {
		log.Printf("Invalid JSON: %v", err)
		return 1
	}
	out, err := jsonstream.Serialize(v, indent)
	if err != nil {
		log.Printf("Failed to serialize: %v", err)
		return 1
	}
	fmt.Printf("%s\n", out)
	return 0
}

func runValidate(data []byte) int {
	if _, err := jsonstream.ParseBytes(data); err != nil {
		var syn *jsonstream.SyntacticError
		if errors.As(err, &syn) {
			log.Printf("Invalid JSON at byte offset %d: %s", syn.ByteOffset, syn.Msg)
		} else {
			log.Printf("Invalid JSON: %v", err)
		}
		return 1
	}
	fmt.Println("valid")
	return 0
}

func runRPC(data []byte, kind string) int {
	switch kind {
	case "request":
		req, err := jsonrpc.ParseRequest(data)
		if err != nil {
			return reportProtocolError(err)
		}
		role := "request"
		if req.IsNotification() {
			role = "notification"
		}
		fmt.Printf("%s method=%s id=%s\n", role, req.Method(), req.ID())
		if params, ok := req.Params(); ok {
			text, _ := jsonstream.SerializeString(params, "")
			fmt.Printf("params: %s\n", text)
		}
		return 0
	case "response":
		resp, err := jsonrpc.ParseResponse(data)
		if err != nil {
			return reportProtocolError(err)
		}
		if rpcErr := resp.Err(); rpcErr != nil {
			fmt.Printf("error response id=%s code=%d message=%q\n", resp.ID(), rpcErr.Code, rpcErr.Message)
			return 0
		}
		result, _ := resp.Result()
		text, _ := jsonstream.SerializeString(result, "")
		fmt.Printf("success response id=%s result=%s\n", resp.ID(), text)
		return 0
	default:
		log.Printf("Unknown kind %q (want request or response)", kind)
		return 2
	}
}

func reportProtocolError(err error) int {
	var perr *jsonrpc.ProtocolError
	if errors.As(err, &perr) {
		log.Printf("Rejected (code %d): %v", perr.Code, perr)
		return 1
	}
	log.Printf("Rejected: %v", err)
	return 1
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func loadConfig(path string, cfg *config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
