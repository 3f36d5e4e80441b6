package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "assetwars/internal/cli"
	"assetwars/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	adminToken := cfg.AdminToken

	root := &cobra.Command{
		Use:          "awc",
		Short:        "Asset Wars command line client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newWalletCmd(&apiBase),
		newJoinCmd(&apiBase),
		newMeCmd(&apiBase),
		newNotificationsCmd(&apiBase),
		newWorkCmd(&apiBase),
		newBusinessCmd(&apiBase),
		newAssetCmd(&apiBase),
		newSwapCmd(&apiBase),
		newTreasuryCmd(&apiBase),
		newAdminCmd(&apiBase, &adminToken),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func reqCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func sessionToken() (string, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return "", fmt.Errorf("wallet required, run `awc wallet new`: %w", err)
	}
	return sess.Token, nil
}

func newWalletCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the local wallet identity",
	}

	var label string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a fresh wallet token and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := uuid.NewString()
			if err := cl.SaveSession(cl.Session{Token: token, Label: label}); err != nil {
				return err
			}
			printSuccess("Wallet created.")
			printNeutral("token: %s", token)
			return nil
		},
	}
	newCmd.Flags().StringVar(&label, "label", "", "optional wallet label")

	importCmd := &cobra.Command{
		Use:   "import <token>",
		Short: "Save an existing wallet token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(args[0])
			if token == "" {
				return fmt.Errorf("empty token")
			}
			if err := cl.SaveSession(cl.Session{Token: token}); err != nil {
				return err
			}
			printSuccess("Wallet imported.")
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved wallet token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			if sess.Label != "" {
				printNeutral("label: %s", sess.Label)
			}
			printNeutral("token: %s", sess.Token)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved wallet token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Wallet cleared.")
			return nil
		},
	}

	cmd.AddCommand(newCmd, importCmd, showCmd, clearCmd)
	return cmd
}

func newJoinCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the game and open a work profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			client := newClient(apiBase)
			if _, err := client.Join(ctx, token); err != nil {
				return err
			}
			if _, err := client.InitPlayer(ctx, token); err != nil {
				return err
			}
			printSuccess("Joined. Work profile ready.")
			return nil
		},
	}
}

func newMeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show wallet state, holdings and balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Me(ctx, token)
			if err != nil {
				return err
			}
			printMe(out)
			return nil
		},
	}
}

func newNotificationsCmd(apiBase *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent notifications for this wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Notifications(ctx, token, limit)
			if err != nil {
				return err
			}
			printNotifications(out)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max entries")
	return cmd
}

func newWorkCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "work",
		Short: "Perform a work action and collect credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Work(ctx, token, uuid.NewString())
			if err != nil {
				return err
			}
			printWork(out)
			return nil
		},
	}
}

func newBusinessCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business",
		Short: "Browse, buy and slot businesses",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the business catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Businesses(ctx)
			if err != nil {
				return err
			}
			printBusinessCatalog(out)
			return nil
		},
	}

	buyCmd := &cobra.Command{
		Use:   "buy <business-id>",
		Short: "Purchase a business with credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid business id %q", args[0])
			}
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).PurchaseBusiness(ctx, token, uint8(id), uuid.NewString()); err != nil {
				return err
			}
			printSuccess("Business purchased.")
			return nil
		},
	}

	slotsCmd := &cobra.Command{
		Use:   "slots <id> [id...]",
		Short: "Set the active business slots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots := make([]uint8, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseUint(a, 10, 8)
				if err != nil {
					return fmt.Errorf("invalid business id %q", a)
				}
				slots = append(slots, uint8(id))
			}
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).SetSlots(ctx, token, slots, uuid.NewString()); err != nil {
				return err
			}
			printSuccess("Active slots updated.")
			return nil
		},
	}

	cmd.AddCommand(listCmd, buyCmd, slotsCmd)
	return cmd
}

func newAssetCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Buy, upgrade, defend and take over asset classes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show registered asset classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Classes(ctx)
			if err != nil {
				return err
			}
			printClasses(out)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <class-id>",
		Short: "Show the holding for a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClassID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Holding(ctx, id)
			if err != nil {
				return err
			}
			printHolding(out)
			return nil
		},
	}

	buyCmd := &cobra.Command{
		Use:   "buy <class-id>",
		Short: "Buy an unclaimed asset",
		Args:  cobra.ExactArgs(1),
		RunE:  assetAction(apiBase, "Asset bought.", func(c *cl.Client, ctx context.Context, token string, id uint64) error {
			_, err := c.BuyAsset(ctx, token, id, uuid.NewString())
			return err
		}),
	}

	upgradeCmd := &cobra.Command{
		Use:   "upgrade <class-id>",
		Short: "Queue an upgrade on an owned asset",
		Args:  cobra.ExactArgs(1),
		RunE:  assetAction(apiBase, "Upgrade queued.", func(c *cl.Client, ctx context.Context, token string, id uint64) error {
			_, err := c.QueueUpgrade(ctx, token, id, uuid.NewString())
			return err
		}),
	}

	finishCmd := &cobra.Command{
		Use:   "finish <class-id>",
		Short: "Finish a matured upgrade",
		Args:  cobra.ExactArgs(1),
		RunE:  assetAction(apiBase, "Upgrade finished.", func(c *cl.Client, ctx context.Context, token string, id uint64) error {
			_, err := c.FinishUpgrade(ctx, token, id)
			return err
		}),
	}

	var spend uint64
	defendCmd := &cobra.Command{
		Use:   "defend <class-id>",
		Short: "Spend tokens to shield an asset and shed risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClassID(args[0])
			if err != nil {
				return err
			}
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).Defend(ctx, token, id, spend, uuid.NewString()); err != nil {
				return err
			}
			printSuccess("Defense applied.")
			return nil
		},
	}
	defendCmd.Flags().Uint64Var(&spend, "spend", 0, "tokens to spend on defense")
	_ = defendCmd.MarkFlagRequired("spend")

	takeoverCmd := &cobra.Command{
		Use:   "takeover <class-id>",
		Short: "Seize an at-risk asset from its owner",
		Args:  cobra.ExactArgs(1),
		RunE:  assetAction(apiBase, "Takeover complete.", func(c *cl.Client, ctx context.Context, token string, id uint64) error {
			_, err := c.Takeover(ctx, token, id, uuid.NewString())
			return err
		}),
	}

	cmd.AddCommand(listCmd, showCmd, buyCmd, upgradeCmd, finishCmd, defendCmd, takeoverCmd)
	return cmd
}

func assetAction(apiBase *string, done string, fn func(c *cl.Client, ctx context.Context, token string, id uint64) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseClassID(args[0])
		if err != nil {
			return err
		}
		token, err := sessionToken()
		if err != nil {
			return err
		}
		ctx, cancel := reqCtx(cmd)
		defer cancel()
		if err := fn(newClient(apiBase), ctx, token, id); err != nil {
			return err
		}
		printSuccess(done)
		return nil
	}
}

func parseClassID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid class id %q", raw)
	}
	return id, nil
}

func newSwapCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Trade credits against tokens on the treasury pool",
	}

	var minOut uint64
	buyCmd := &cobra.Command{
		Use:   "buy <credits>",
		Short: "Swap credits for tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).SwapBuy(ctx, token, amount, minOut, uuid.NewString())
			if err != nil {
				return err
			}
			printSwap(out)
			return nil
		},
	}
	buyCmd.Flags().Uint64Var(&minOut, "min-out", 0, "reject if output below this")

	var minOutSell uint64
	sellCmd := &cobra.Command{
		Use:   "sell <tokens>",
		Short: "Swap tokens for credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			token, err := sessionToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).SwapSell(ctx, token, amount, minOutSell, uuid.NewString())
			if err != nil {
				return err
			}
			printSwap(out)
			return nil
		},
	}
	sellCmd.Flags().Uint64Var(&minOutSell, "min-out", 0, "reject if output below this")

	cmd.AddCommand(buyCmd, sellCmd)
	return cmd
}

func newTreasuryCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treasury",
		Short: "Show the treasury pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Treasury(ctx)
			if err != nil {
				return err
			}
			printTreasury(out)
			return nil
		},
	}

	var limit int
	pricesCmd := &cobra.Command{
		Use:   "prices",
		Short: "Show recent pool price snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			out, err := newClient(apiBase).Prices(ctx, limit)
			if err != nil {
				return err
			}
			printPrices(out)
			return nil
		},
	}
	pricesCmd.Flags().IntVar(&limit, "limit", 20, "max snapshots")

	cmd.AddCommand(pricesCmd)
	return cmd
}

func newAdminCmd(apiBase *string, adminToken *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator commands (requires AWARS_ADMIN_TOKEN)",
	}
	cmd.PersistentFlags().StringVar(adminToken, "token", *adminToken, "admin token")

	requireToken := func() (string, error) {
		t := strings.TrimSpace(*adminToken)
		if t == "" {
			return "", fmt.Errorf("admin token required, set AWARS_ADMIN_TOKEN or --token")
		}
		return t, nil
	}

	var igAdmin string
	var igFee uint16
	var igUpCD, igDefCD int64
	var igThreshold, igGrowth, igReduction uint32
	initGameCmd := &cobra.Command{
		Use:   "init-game",
		Short: "Initialize the game config singleton",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			_, err = newClient(apiBase).AdminInitGame(ctx, t, map[string]any{
				"admin":                           igAdmin,
				"fee_bps":                         igFee,
				"default_upgrade_cd":              igUpCD,
				"default_defend_cd":               igDefCD,
				"risk_threshold":                  igThreshold,
				"risk_growth_per_sec":             igGrowth,
				"defend_risk_reduction_per_token": igReduction,
			})
			if err != nil {
				return err
			}
			printSuccess("Game initialized.")
			return nil
		},
	}
	initGameCmd.Flags().StringVar(&igAdmin, "admin", "", "admin wallet identity")
	initGameCmd.Flags().Uint16Var(&igFee, "fee-bps", 0, "game fee in basis points")
	initGameCmd.Flags().Int64Var(&igUpCD, "upgrade-cd", 3600, "default upgrade cooldown seconds")
	initGameCmd.Flags().Int64Var(&igDefCD, "defend-cd", 3600, "default defend cooldown seconds")
	initGameCmd.Flags().Uint32Var(&igThreshold, "risk-threshold", 1000, "risk score that opens takeover")
	initGameCmd.Flags().Uint32Var(&igGrowth, "risk-growth", 1, "risk growth per second")
	initGameCmd.Flags().Uint32Var(&igReduction, "defend-reduction", 1, "risk shed per token spent")
	_ = initGameCmd.MarkFlagRequired("admin")

	var acID, acPrice, acNum, acDen, acYield uint64
	var acUpCD, acDefCD int64
	var acGrowth uint32
	addClassCmd := &cobra.Command{
		Use:   "add-class",
		Short: "Register a new asset class",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			_, err = newClient(apiBase).AdminAddClass(ctx, t, map[string]any{
				"class_id":                 acID,
				"base_price":               acPrice,
				"price_scale_num":          acNum,
				"price_scale_den":          acDen,
				"base_yield":               acYield,
				"upgrade_cd":               acUpCD,
				"defend_cd":                acDefCD,
				"base_risk_growth_per_sec": acGrowth,
			})
			if err != nil {
				return err
			}
			printSuccess("Asset class registered.")
			return nil
		},
	}
	addClassCmd.Flags().Uint64Var(&acID, "id", 0, "class id")
	addClassCmd.Flags().Uint64Var(&acPrice, "base-price", 0, "level 0 price in tokens")
	addClassCmd.Flags().Uint64Var(&acNum, "scale-num", 3, "price curve numerator")
	addClassCmd.Flags().Uint64Var(&acDen, "scale-den", 2, "price curve denominator")
	addClassCmd.Flags().Uint64Var(&acYield, "yield", 0, "base yield")
	addClassCmd.Flags().Int64Var(&acUpCD, "upgrade-cd", 0, "upgrade cooldown seconds, 0 for global default")
	addClassCmd.Flags().Int64Var(&acDefCD, "defend-cd", 0, "defend cooldown seconds, 0 for global default")
	addClassCmd.Flags().Uint32Var(&acGrowth, "risk-growth", 0, "class risk growth per second, 0 for global default")
	_ = addClassCmd.MarkFlagRequired("id")
	_ = addClassCmd.MarkFlagRequired("base-price")

	var itAuthority string
	var itFee uint16
	var itMaxTrade, itMinBase, itMinQuote uint64
	initTreasuryCmd := &cobra.Command{
		Use:   "init-treasury",
		Short: "Initialize the treasury pool (starts paused)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			_, err = newClient(apiBase).AdminInitTreasury(ctx, t, map[string]any{
				"authority":           itAuthority,
				"fee_bps":             itFee,
				"max_trade_units":     itMaxTrade,
				"min_base_liquidity":  itMinBase,
				"min_quote_liquidity": itMinQuote,
			})
			if err != nil {
				return err
			}
			printSuccess("Treasury initialized. Seed liquidity, then resume with pool-params --resume.")
			return nil
		},
	}
	initTreasuryCmd.Flags().StringVar(&itAuthority, "authority", "", "treasury authority identity")
	initTreasuryCmd.Flags().Uint16Var(&itFee, "fee-bps", 30, "swap fee in basis points")
	initTreasuryCmd.Flags().Uint64Var(&itMaxTrade, "max-trade", 0, "max input per trade, 0 for unlimited")
	initTreasuryCmd.Flags().Uint64Var(&itMinBase, "min-base", 0, "base seed floor, 0 for default")
	initTreasuryCmd.Flags().Uint64Var(&itMinQuote, "min-quote", 0, "quote seed floor, 0 for default")
	_ = initTreasuryCmd.MarkFlagRequired("authority")

	var gpFee uint16
	var gpUpCD, gpDefCD int64
	var gpThreshold, gpGrowth, gpReduction uint32
	setParamsCmd := &cobra.Command{
		Use:   "set-params",
		Short: "Update game config fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			body := map[string]any{}
			if cmd.Flags().Changed("fee-bps") {
				body["fee_bps"] = gpFee
			}
			if cmd.Flags().Changed("upgrade-cd") {
				body["default_upgrade_cd"] = gpUpCD
			}
			if cmd.Flags().Changed("defend-cd") {
				body["default_defend_cd"] = gpDefCD
			}
			if cmd.Flags().Changed("risk-threshold") {
				body["risk_threshold"] = gpThreshold
			}
			if cmd.Flags().Changed("risk-growth") {
				body["risk_growth_per_sec"] = gpGrowth
			}
			if cmd.Flags().Changed("defend-reduction") {
				body["defend_risk_reduction_per_token"] = gpReduction
			}
			if len(body) == 0 {
				return fmt.Errorf("nothing to update")
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AdminSetParams(ctx, t, body); err != nil {
				return err
			}
			printSuccess("Game params updated.")
			return nil
		},
	}
	setParamsCmd.Flags().Uint16Var(&gpFee, "fee-bps", 0, "game fee in basis points")
	setParamsCmd.Flags().Int64Var(&gpUpCD, "upgrade-cd", 0, "default upgrade cooldown seconds")
	setParamsCmd.Flags().Int64Var(&gpDefCD, "defend-cd", 0, "default defend cooldown seconds")
	setParamsCmd.Flags().Uint32Var(&gpThreshold, "risk-threshold", 0, "risk score that opens takeover")
	setParamsCmd.Flags().Uint32Var(&gpGrowth, "risk-growth", 0, "risk growth per second")
	setParamsCmd.Flags().Uint32Var(&gpReduction, "defend-reduction", 0, "risk shed per token spent")

	var pausedArg string
	pauseCmd := &cobra.Command{
		Use:   "pause <on|off>",
		Short: "Pause or resume the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pausedArg = strings.ToLower(args[0])
			if pausedArg != "on" && pausedArg != "off" {
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			t, err := requireToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AdminSetPaused(ctx, t, pausedArg == "on"); err != nil {
				return err
			}
			printSuccess("Pause state updated.")
			return nil
		},
	}

	var feeBps uint16
	var maxTrade uint64
	var resume bool
	poolParamsCmd := &cobra.Command{
		Use:   "pool-params",
		Short: "Update treasury fee, trade cap, or pause state",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			body := map[string]any{}
			if cmd.Flags().Changed("fee-bps") {
				body["fee_bps"] = feeBps
			}
			if cmd.Flags().Changed("max-trade") {
				body["max_trade_units"] = maxTrade
			}
			if cmd.Flags().Changed("resume") {
				body["paused"] = !resume
			}
			if len(body) == 0 {
				return fmt.Errorf("nothing to update")
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AdminSetTreasuryParams(ctx, t, body); err != nil {
				return err
			}
			printSuccess("Treasury params updated.")
			return nil
		},
	}
	poolParamsCmd.Flags().Uint16Var(&feeBps, "fee-bps", 0, "swap fee in basis points")
	poolParamsCmd.Flags().Uint64Var(&maxTrade, "max-trade", 0, "max input per trade, 0 for unlimited")
	poolParamsCmd.Flags().BoolVar(&resume, "resume", false, "resume (true) or pause (false) trading")

	var baseAmount, quoteAmount uint64
	liquidityCmd := &cobra.Command{
		Use:   "add-liquidity",
		Short: "Deposit reserves into the treasury pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := requireToken()
			if err != nil {
				return err
			}
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AdminAddLiquidity(ctx, t, baseAmount, quoteAmount, uuid.NewString()); err != nil {
				return err
			}
			printSuccess("Liquidity added.")
			return nil
		},
	}
	liquidityCmd.Flags().Uint64Var(&baseAmount, "base", 0, "base tokens to deposit")
	liquidityCmd.Flags().Uint64Var(&quoteAmount, "quote", 0, "credits to deposit")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show game config and treasury state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := reqCtx(cmd)
			defer cancel()
			client := newClient(apiBase)
			cfg, err := client.Config(ctx)
			if err != nil {
				return err
			}
			printJSON("config", cfg)
			treasury, err := client.Treasury(ctx)
			if err != nil {
				printWarn("treasury: %v", err)
				return nil
			}
			printJSON("treasury", treasury)
			return nil
		},
	}

	cmd.AddCommand(initGameCmd, addClassCmd, setParamsCmd, pauseCmd, initTreasuryCmd, poolParamsCmd, liquidityCmd, statusCmd)
	return cmd
}
