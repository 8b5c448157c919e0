// Command pbjc is the schema->codec generator CLI (spec.md §6.3): it
// reads a small JSON schema description (a stand-in for a parsed .proto
// AST — the grammar parser itself is out of scope, spec.md §1) and emits
// each message's Go record type via compiler/codegen.Generate, which
// does not emit the parse/write/measure functions. Wiring is
// grounded in dgnsrekt/gexbot-downloader's cmd/downloader/main.go (cobra
// root command, viper-backed config, zap logger built once in main).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hashgraph/pbj-go/compiler/codegen"
	"github.com/hashgraph/pbj-go/compiler/schema"
	"github.com/hashgraph/pbj-go/internal/config"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// jsonSchemaFile is the small JSON schema description cmd/pbjc accepts in
// place of a parsed .proto AST.
type jsonSchemaFile struct {
	File     string            `json:"file"`
	Messages []jsonMessageDesc `json:"messages"`
}

type jsonMessageDesc struct {
	Name   string          `json:"name"`
	Fields []jsonFieldDesc `json:"fields"`
}

type jsonFieldDesc struct {
	Name       string `json:"name"`
	Number     uint32 `json:"number"`
	Type       string `json:"type"`
	Repeated   bool   `json:"repeated"`
	OneOf      bool   `json:"oneof"`
	OneOfGroup string `json:"oneof_group"`
}

func buildArena(desc jsonSchemaFile) (*schema.Arena, []schema.NodeRef, error) {
	a := schema.NewArena()
	var refs []schema.NodeRef
	for _, m := range desc.Messages {
		node := schema.Node{
			File:          desc.File,
			QualifiedName: m.Name,
			Kind:          schema.KindMessage,
		}
		for _, f := range m.Fields {
			node.Fields = append(node.Fields, schema.FieldNode{
				Name:       f.Name,
				Number:     f.Number,
				ProtoType:  f.Type,
				IsRepeated: f.Repeated,
				IsOneOf:    f.OneOf,
				OneOfGroup: f.OneOfGroup,
			})
		}
		refs = append(refs, a.Declare(node))
	}
	return a, refs, nil
}

func generateCmd() *cobra.Command {
	var schemaPath string
	var outDir string
	var pkg string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go codecs from a JSON schema description",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}
			var desc jsonSchemaFile
			if err := json.Unmarshal(raw, &desc); err != nil {
				return fmt.Errorf("parsing schema json: %w", err)
			}
			a, refs, err := buildArena(desc)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}
			for _, ref := range refs {
				node := a.Node(ref)
				src, err := codegen.Generate(a, ref, codegen.Options{Package: pkg})
				if err != nil {
					logger.Error("generate failed", zap.String("message", node.QualifiedName), zap.Error(err))
					return err
				}
				outPath := filepath.Join(outDir, node.QualifiedName+"_gen.go")
				if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				logger.Info("generated codec", zap.String("message", node.QualifiedName), zap.String("path", outPath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON schema description")
	cmd.Flags().StringVar(&outDir, "out", "gen", "output directory")
	cmd.Flags().StringVar(&pkg, "package", "gen", "generated package name")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pbjc",
		Short: "PBJ schema-to-codec compiler",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			_, err = config.Load(cfgFile)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", os.Getenv("PBJ_CONFIG"), "config file path (or set PBJ_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
