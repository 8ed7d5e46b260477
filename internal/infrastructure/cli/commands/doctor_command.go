package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen/internal/app"
	"github.com/doeshing/passgen/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose config, storage and clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
}

func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if err := container.Init(cmd.Context()); err != nil {
		displayDoctorReport(out, domain.HealthReport{Checks: []domain.HealthCheck{{
			Name:    "Config file",
			Status:  domain.HealthError,
			Details: err.Error(),
		}}})
		return err
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return errors.Wrap(err, "diagnostics completed with errors")
	}
	if !report.Healthy() {
		return errors.New("one or more checks failed")
	}
	return nil
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
