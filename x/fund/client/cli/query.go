package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the fund module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "fund",
		Short:                      "Querying commands for the fund module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryFund(),
		CmdQueryFundValue(),
		CmdQueryShares(),
		CmdQueryManagerCut(),
	)

	return cmd
}

// CmdQueryFund returns the command to query a fund
func CmdQueryFund() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [fund-id]",
		Short: "Query a fund by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Fund query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryFundValue returns the command to query a fund's NAV
func CmdQueryFundValue() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value [fund-id]",
		Short: "Query a fund's current value in base-asset units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Fund value query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryShares returns the command to query an investor position
func CmdQueryShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares [fund-id] [investor]",
		Short: "Query an investor's shares and profit in a fund",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Shares query for %s in fund %s requires running node connection\n", args[1], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryManagerCut returns the command to query the accrued manager fee
func CmdQueryManagerCut() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager-cut [fund-id]",
		Short: "Query the manager's accrued performance fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Manager cut query for fund %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
