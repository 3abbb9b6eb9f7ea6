package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/fundchain/x/fund/types"
)

// GetTxCmd returns the transaction commands for the fund module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "fund",
		Short:                      "Fund module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateFund(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdTransferShares(),
		CmdTrade(),
		CmdWithdrawManagerFee(),
	)

	return cmd
}

// CmdCreateFund returns the command to create a fund
func CmdCreateFund() *cobra.Command {
	var (
		fundType       string
		platform       string
		platformFeeBps int64
		poolPortal     string
		defiPortal     string
		whitelistOnly  bool
		tradeVerify    bool
	)

	cmd := &cobra.Command{
		Use:   "create [name] [base-asset] [success-fee-bps] [exchange-portal]",
		Short: "Create a new pooled fund",
		Long: `Create a new pooled fund.

Examples:
  fundchaind tx fund create "Alpha Fund" uusdc 1500 cosmos1exchange... --from manager
  fundchaind tx fund create "Light Fund" uusdc 1000 cosmos1exchange... --fund-type light --from manager`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			feeBps, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid success fee: %v", err)
			}

			msg := &types.MsgCreateFund{
				Manager:        clientCtx.GetFromAddress().String(),
				Name:           args[0],
				FundType:       fundType,
				BaseAsset:      args[1],
				Platform:       platform,
				SuccessFeeBps:  feeBps,
				PlatformFeeBps: platformFeeBps,
				ExchangePortal: args[3],
				PoolPortal:     poolPortal,
				DefiPortal:     defiPortal,
				WhitelistOnly:  whitelistOnly,
				TradeVerify:    tradeVerify,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().StringVar(&fundType, "fund-type", types.FundTypeFull, "fund type: full or light")
	cmd.Flags().StringVar(&platform, "platform", "", "platform fee recipient address")
	cmd.Flags().Int64Var(&platformFeeBps, "platform-fee-bps", 0, "platform share of the success fee in bps")
	cmd.Flags().StringVar(&poolPortal, "pool-portal", "", "pool portal address")
	cmd.Flags().StringVar(&defiPortal, "defi-portal", "", "defi portal address")
	cmd.Flags().BoolVar(&whitelistOnly, "whitelist-only", false, "restrict deposits to whitelisted investors")
	cmd.Flags().BoolVar(&tradeVerify, "trade-verify", false, "require destination assets to be whitelisted")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns the command to deposit into a fund
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [fund-id] [amount]",
		Short: "Deposit base asset into a fund",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDeposit{
				Investor: clientCtx.GetFromAddress().String(),
				FundID:   args[0],
				Amount:   args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to withdraw from a fund
func CmdWithdraw() *cobra.Command {
	var convertToBase bool

	cmd := &cobra.Command{
		Use:   "withdraw [fund-id] [percent-bps]",
		Short: "Withdraw a percentage of your position (0 or 10000 for all)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			percentBps, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid percentage: %v", err)
			}

			msg := &types.MsgWithdraw{
				Investor:      clientCtx.GetFromAddress().String(),
				FundID:        args[0],
				PercentBps:    percentBps,
				ConvertToBase: convertToBase,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().BoolVar(&convertToBase, "convert-to-base", false, "convert non-cryptocurrency slices to the base asset")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferShares returns the command to transfer fund shares
func CmdTransferShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-shares [fund-id] [recipient] [shares]",
		Short: "Transfer fund shares to another investor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferShares{
				From:   clientCtx.GetFromAddress().String(),
				To:     args[1],
				FundID: args[0],
				Shares: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTrade returns the command to trade fund assets (manager only)
func CmdTrade() *cobra.Command {
	var minReturn string

	cmd := &cobra.Command{
		Use:   "trade [fund-id] [source-asset] [amount] [dest-asset]",
		Short: "Trade a held asset through the fund's exchange portal",
		Long: `Trade a held asset through the fund's exchange portal.

Examples:
  fundchaind tx fund trade fund-1a2b3c4d uusdc 1000000 uatom --from manager
  fundchaind tx fund trade fund-1a2b3c4d uatom 50000 uusdc --min-return 990000 --from manager`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTrade{
				Manager:       clientCtx.GetFromAddress().String(),
				FundID:        args[0],
				SourceAsset:   args[1],
				Amount:        args[2],
				DestAsset:     args[3],
				MinimumReturn: minReturn,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().StringVar(&minReturn, "min-return", "0", "minimum acceptable destination amount")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawManagerFee returns the command to withdraw the manager's cut
func CmdWithdrawManagerFee() *cobra.Command {
	var convertToBase bool

	cmd := &cobra.Command{
		Use:   "withdraw-fee [fund-id]",
		Short: "Withdraw the accrued manager performance fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawManagerFee{
				Manager:       clientCtx.GetFromAddress().String(),
				FundID:        args[0],
				ConvertToBase: convertToBase,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().BoolVar(&convertToBase, "convert-to-base", false, "convert non-cryptocurrency slices to the base asset")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
