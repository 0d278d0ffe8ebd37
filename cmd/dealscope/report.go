package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

func newReportCmd() *cobra.Command {
	var (
		snapshotPath string
		at           string
		outputFmt    string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the full insight overview from a CRM snapshot",
		Long:  `Reads a snapshot file, scores every contact and deal, and renders alerts, actions, and pipeline health.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(reportOpts{
				snapshotPath: snapshotPath,
				at:           at,
				outputFmt:    outputFmt,
				configPath:   configPath,
			})
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Path to a snapshot JSON file (required)")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate as of this time (RFC3339 or YYYY-MM-DD, default: now)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a Dealscope config file")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

type reportOpts struct {
	snapshotPath string
	at           string
	outputFmt    string
	configPath   string
}

func runReport(opts reportOpts) error {
	snap, err := crm.LoadSnapshot(opts.snapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	now, err := resolveNow(opts.at)
	if err != nil {
		return err
	}

	engine, err := loadEngine(opts.configPath)
	if err != nil {
		return err
	}

	overview := engine.Overview(snap, now)

	switch opts.outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(overview); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		return renderOverview(os.Stdout, overview)
	}
}

// renderOverview writes a terminal-friendly summary of the overview.
func renderOverview(w io.Writer, o *insight.Overview) error {
	p := o.Pipeline
	fmt.Fprintf(w, "Dealscope — %s\n", o.TenantID)
	fmt.Fprintf(w, "Generated at %s\n\n", o.GeneratedAt.Format("02/01/2006 15:04"))

	fmt.Fprintf(w, "Pipeline\n")
	fmt.Fprintf(w, "  Valeur pondérée   %12.0f €\n", p.WeightedValue)
	fmt.Fprintf(w, "  Taux de conversion %10d %%\n", p.ConversionRate)
	fmt.Fprintf(w, "  Commission moyenne %10.0f €\n", p.AvgCommission)
	fmt.Fprintf(w, "  Évolution mensuelle %+8d %%\n", p.MonthOverMonthPct)
	fmt.Fprintf(w, "  Santé              %10d /100\n", p.HealthScore)
	fmt.Fprintf(w, "  Vélocité           %10.0f jours\n", p.VelocityDays)
	fmt.Fprintf(w, "  Momentum           %10s\n", p.Momentum)
	if len(p.StageDistribution) > 0 {
		fmt.Fprintf(w, "  Répartition par étape:\n")
		for _, share := range p.StageDistribution {
			fmt.Fprintf(w, "    %-14s %10.0f € (%.0f%%)\n", share.Stage, share.Amount, share.Percent)
		}
	}

	fmt.Fprintf(w, "\nAlertes (%s)\n", o.Alerts.Severity)
	renderCategory(w, "Affaires bloquées", o.Alerts.BlockedDeals)
	renderCategory(w, "Relances en retard", o.Alerts.OverdueContacts)
	renderCategory(w, "SLA dépassés", o.Alerts.SLABreaches)

	fmt.Fprintf(w, "\nActions recommandées\n")
	if len(o.Actions) == 0 {
		fmt.Fprintf(w, "  (aucune)\n")
	}
	for _, a := range o.Actions {
		fmt.Fprintf(w, "  [%s] %s — %s\n", a.Priority, a.Title, a.Description)
	}

	badged := 0
	for _, badges := range o.ContactBadges {
		badged += len(badges)
	}
	fmt.Fprintf(w, "\n%d badges sur %d contacts, %d affaires notées\n",
		badged, len(o.ContactBadges), len(o.DealHealth))

	// Worst deals first so an agent sees what needs attention.
	type scored struct {
		id string
		hs insight.DealHealthScore
	}
	var deals []scored
	for id, hs := range o.DealHealth {
		deals = append(deals, scored{id, hs})
	}
	sort.Slice(deals, func(i, j int) bool {
		if deals[i].hs.Score != deals[j].hs.Score {
			return deals[i].hs.Score < deals[j].hs.Score
		}
		return deals[i].id < deals[j].id
	})
	for i, d := range deals {
		if i >= 5 {
			fmt.Fprintf(w, "  ... %d autres\n", len(deals)-i)
			break
		}
		fmt.Fprintf(w, "  %3d/100 %-10s %s\n", d.hs.Score, d.hs.Label, d.id)
	}

	return nil
}

func renderCategory(w io.Writer, title string, c insight.CategoryAlerts) {
	fmt.Fprintf(w, "  %-20s %d", title, c.Count)
	if c.Hidden > 0 {
		fmt.Fprintf(w, " (dont %d masqués)", c.Hidden)
	}
	fmt.Fprintln(w)
	for _, item := range c.Preview {
		fmt.Fprintf(w, "    - %s: %s\n", item.Label, item.Sublabel)
	}
}
