package ncctl

import (
	"fmt"
	"strings"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	flagProgram       string
	flagExpenseNature string
	flagSection       string
	flagStatus        string
	flagExpiring      int
	flagLimit         int
	flagCursor        string
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "List allocation balances",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := balanceFilterFromFlags()
		if err != nil {
			return err
		}
		svc, closeFn, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		rows, err := svc.Balance.QueryBalances(cmd.Context(), filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderBalances(rows))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate balances by status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := balanceFilterFromFlags()
		if err != nil {
			return err
		}
		svc, closeFn, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		summary, err := svc.Balance.DashboardSummary(cmd.Context(), filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderSummary(summary))
		return nil
	},
}

var bySectionCmd = &cobra.Command{
	Use:   "by-section",
	Short: "Aggregate balances per section",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := balanceFilterFromFlags()
		if err != nil {
			return err
		}
		svc, closeFn, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		sections, err := svc.Balance.SectionBalances(cmd.Context(), filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderSectionBalances(sections))
		return nil
	},
}

var statementCmd = &cobra.Command{
	Use:   "statement <noteID>",
	Short: "Print the statement of a credit note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		statement, err := svc.Balance.QueryNoteStatement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderStatement(statement))
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeFn, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		page, err := svc.Audit.ListRecent(cmd.Context(), flagLimit, flagCursor)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderAudit(page.Entries))
		if page.NextCursor != "" {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("More entries: --cursor "+page.NextCursor))
		}
		return nil
	},
}

func balanceFilterFromFlags() (domain.BalanceFilter, error) {
	status := domain.NoteStatus(strings.ToUpper(flagStatus))
	if status != "" && !status.IsValid() {
		return domain.BalanceFilter{}, fmt.Errorf("unknown status %q", flagStatus)
	}
	if flagExpiring < 0 || flagExpiring > domain.MaxExpiringWithinDays {
		return domain.BalanceFilter{}, fmt.Errorf("--expiring-within must be between 0 and %d", domain.MaxExpiringWithinDays)
	}
	return domain.BalanceFilter{
		SectionID:          flagSection,
		Program:            flagProgram,
		ExpenseNature:      flagExpenseNature,
		Status:             status,
		ExpiringWithinDays: flagExpiring,
	}, nil
}

func init() {
	for _, c := range []*cobra.Command{balancesCmd, summaryCmd, bySectionCmd} {
		c.Flags().StringVarP(&flagProgram, "program", "p", "", "Filter by program")
		c.Flags().StringVarP(&flagExpenseNature, "expense-nature", "e", "", "Filter by expense nature")
		c.Flags().StringVar(&flagSection, "section", "", "Filter by section ID")
		c.Flags().StringVarP(&flagStatus, "status", "s", "", "ACTIVE, DEPLETED, EXPIRED or CANCELLED")
		c.Flags().IntVar(&flagExpiring, "expiring-within", 0, "Only active allocations expiring within this many days")
	}
	auditCmd.Flags().IntVarP(&flagLimit, "limit", "l", 50, "Maximum entries")
	auditCmd.Flags().StringVar(&flagCursor, "cursor", "", "Continue from a previous page")

	rootCmd.AddCommand(balancesCmd, summaryCmd, bySectionCmd, statementCmd, auditCmd)
}
