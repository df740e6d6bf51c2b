package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/spf13/cobra"
)

func newRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles [rol]",
		Short: "Muestra la tabla rol → permisos",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := rbac.Roles()
			if len(args) == 1 {
				r, ok := rbac.ParseRole(args[0])
				if !ok {
					return fmt.Errorf("rol desconocido: %s", args[0])
				}
				roles = []rbac.Role{r}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROL\tPERMISOS\tDETALLE")
			for _, r := range roles {
				ps := rbac.PermissionsFor(r)
				names := make([]string, len(ps))
				for i, p := range ps {
					names[i] = string(p)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", r, len(ps), strings.Join(names, ","))
			}
			return w.Flush()
		},
	}
}
