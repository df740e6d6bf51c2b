package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

const (
	orgNameFlag       = "name"
	orgCodeFlag       = "code"
	orgAddressFlag    = "address"
	orgContactFlag    = "contact-no"
	adminNameFlag     = "admin-name"
	adminEmailFlag    = "admin-email"
	adminPasswordFlag = "admin-password"
)

// bootstrapFlags flags de bootstrap-org, un mapa por comando: cada
// StringFlag se enlaza a viper una sola vez.
func bootstrapFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		orgNameFlag:       &cobraflags.StringFlag{Name: orgNameFlag, Usage: "Nombre de la organización (obligatorio)"},
		orgCodeFlag:       &cobraflags.StringFlag{Name: orgCodeFlag, Usage: "Código: 2 letras mayúsculas y 4 dígitos, p. ej. AN0001 (obligatorio)"},
		orgAddressFlag:    &cobraflags.StringFlag{Name: orgAddressFlag, Usage: "Dirección"},
		orgContactFlag:    &cobraflags.StringFlag{Name: orgContactFlag, Usage: "Teléfono de contacto"},
		adminNameFlag:     &cobraflags.StringFlag{Name: adminNameFlag, Usage: "Nombre del administrador (obligatorio)"},
		adminEmailFlag:    &cobraflags.StringFlag{Name: adminEmailFlag, Usage: "Email del administrador (obligatorio)"},
		adminPasswordFlag: &cobraflags.StringFlag{Name: adminPasswordFlag, Usage: "Contraseña del administrador, entre 8 y 72 caracteres (obligatorio)"},
	}
}

func newBootstrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap-org",
		Short: "Crea una organización con su super_admin y los tipos de material por defecto",
		Long: `Alta atómica de una organización: la organización, sus tipos de material por
defecto y su primer usuario se crean en una sola transacción.

El usuario creado por este comando es super_admin; las organizaciones dadas de
alta desde la API reciben un admin.

Ejemplo:
  obractl bootstrap-org --name "Constructora Andina" --code AN0001 \
    --admin-name "Ana Rojas" --admin-email ana@andina.co --admin-password 's3cret-123'`,
	}
	flags := bootstrapFlags()
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return bootstrapCommand(cmd, flags)
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func bootstrapRequest(flags map[string]cobraflags.Flag) (dto.CreateOrganizationRequest, error) {
	in := dto.CreateOrganizationRequest{
		Name:      flags[orgNameFlag].GetString(),
		Code:      flags[orgCodeFlag].GetString(),
		Address:   flags[orgAddressFlag].GetString(),
		ContactNo: flags[orgContactFlag].GetString(),
		Admin: dto.AdminUserRequest{
			Name:     flags[adminNameFlag].GetString(),
			Email:    flags[adminEmailFlag].GetString(),
			Password: flags[adminPasswordFlag].GetString(),
		},
	}
	var missing []error
	for flag, v := range map[string]string{
		orgNameFlag:       in.Name,
		orgCodeFlag:       in.Code,
		adminNameFlag:     in.Admin.Name,
		adminEmailFlag:    in.Admin.Email,
		adminPasswordFlag: in.Admin.Password,
	} {
		if v == "" {
			missing = append(missing, fmt.Errorf("--%s es obligatorio", flag))
		}
	}
	if len(missing) > 0 {
		return in, errors.Join(missing...)
	}
	// mismas reglas que POST /api/organizations
	if err := dto.Validate(in); err != nil {
		fields := domain.Fields(err)
		if len(fields) == 0 {
			return in, err
		}
		invalid := make([]error, 0, len(fields))
		for _, f := range fields {
			invalid = append(invalid, fmt.Errorf("--%s: %s", flagForField(f.Field), f.Message))
		}
		return in, errors.Join(invalid...)
	}
	return in, nil
}

// flagForField nombre del flag para un campo del DTO: "admin.email" → "admin-email".
func flagForField(field string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(field)
}

func bootstrapCommand(cmd *cobra.Command, flags map[string]cobraflags.Flag) error {
	in, err := bootstrapRequest(flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, log, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := organization.NewUseCase(postgres.NewOrganizationRepository(pool), postgres.NewTxRunner(pool))
	out, err := uc.Bootstrap(ctx, in, rbac.RoleSuperAdmin)
	if err != nil {
		for _, f := range domain.Fields(err) {
			log.Error().Str("field", f.Field).Msg(f.Message)
		}
		return fmt.Errorf("alta de organización: %s", domain.Message(err))
	}

	log.Info().
		Str("organization_id", out.Organization.ID).
		Str("code", out.Organization.Code).
		Str("admin_id", out.Admin.ID).
		Int("material_types", len(out.MaterialTypes)).
		Msg("organización creada")
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", out.Organization.ID, out.Organization.Code, out.Admin.Email)
	return nil
}
