package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/takty/croqujs-sub000/internal/domain"
	m "github.com/takty/croqujs-sub000/internal/model"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

var libraryOutputFlag string
var libraryNamespaceFlag string
var libraryFunctionsFlag []string
var pageOutputFlag string
var pageShimFlag bool

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a script as a library or a web page",
	}
	cmd.AddCommand(newExportLibraryCmd(), newExportPageCmd())

	return cmd
}

func newExportLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library <file>",
		Short: "Wrap a script so its functions are reachable through a namespace",
		Long: `Wrap a script in a closure assigned to a global namespace variable.
The namespace defaults to one inferred from the file name and the exported
functions default to every top-level function declaration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := m.Path(args[0])

			doc, err := readDocument(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			namespace := libraryNamespaceFlag
			if namespace == "" {
				namespace = domain.InferNamespace(args[0])
			}

			if !identifierPattern.MatchString(namespace) {
				return fmt.Errorf("namespace %q is not a valid identifier", namespace)
			}

			functions := libraryFunctionsFlag
			if !cmd.Flags().Changed("functions") {
				functions = exporter.FunctionNames(doc.Text)
			}

			res, err := exporter.Export(doc, m.LibraryTarget{
				Output:    m.Path(libraryOutputFlag),
				Namespace: namespace,
				Functions: functions,
			})
			if err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}

			return ui.DisplayLibrary(res.Library, namespace, functions)
		},
	}
	cmd.Flags().StringVarP(&libraryOutputFlag, "output", "o", "", "library file to write")
	cmd.Flags().StringVarP(&libraryNamespaceFlag, "namespace", "n", "", "global variable holding the library (default inferred from the file name)")
	cmd.Flags().StringSliceVarP(&libraryFunctionsFlag, "functions", "f", nil, "functions to export (default every top-level function)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newExportPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <file>",
		Short: "Bundle a script and its dependencies into a runnable page",
		Long: `Write index.html and every local dependency into the output directory.
Scripts declared with @use are wrapped as libraries; the others are copied.
Remote dependencies are referenced by URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := m.Path(args[0])

			doc, err := readDocument(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			res, err := exporter.Export(doc, m.PageTarget{
				OutputDir:  m.Path(pageOutputFlag),
				InjectShim: pageShimFlag,
			})
			if err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}

			return ui.DisplayPage(*res.Page)
		},
	}
	cmd.Flags().StringVarP(&pageOutputFlag, "output", "o", "", "directory to write the page into")
	cmd.Flags().BoolVar(&pageShimFlag, "shim", false, "inject the runtime shim before the dependencies")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
