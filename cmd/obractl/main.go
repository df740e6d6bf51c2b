// Comando obractl: tareas de operación sobre la base de Obra API
// (esquema, alta de la primera organización, consulta de roles).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "obractl",
		Short:        "Herramientas de operación de Obra API",
		SilenceUsage: true,
	}
	root.AddCommand(newInitDBCommand())
	root.AddCommand(newBootstrapCommand())
	root.AddCommand(newRolesCommand())
	return root
}
