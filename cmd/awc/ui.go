package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(format string, args ...any) {
	success.Printf(format+"\n", args...)
}

func printWarn(format string, args ...any) {
	warn.Printf(format+"\n", args...)
}

func printNeutral(format string, args ...any) {
	neutral.Printf(format+"\n", args...)
}

func printJSON(title string, payload any) {
	accent.Printf("%s\n", title)
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		danger.Printf("render: %v\n", err)
		return
	}
	fmt.Println(string(raw))
}

func printMe(out map[string]any) {
	accent.Println("wallet")
	if p, ok := out["player"].(string); ok {
		neutral.Printf("  id: %s\n", p)
	}
	if b, ok := out["base_balance"]; ok {
		neutral.Printf("  tokens: %s\n", num(b))
	}
	if state, ok := out["state"].(map[string]any); ok && state != nil {
		neutral.Printf("  credits: %s  streak: %s  level: %s\n",
			num(state["credits"]), num(state["streak_count"]), num(state["work_frequency_level"]))
		if slots, ok := out["max_slots"]; ok {
			neutral.Printf("  active slots: %v (max %s)\n", state["active_business_slots"], num(slots))
		}
	} else {
		warn.Println("  no work profile, run `awc join`")
	}
	holdings, _ := out["holdings"].([]any)
	if len(holdings) == 0 {
		return
	}
	accent.Println("holdings")
	for _, h := range holdings {
		m, ok := h.(map[string]any)
		if !ok {
			continue
		}
		neutral.Printf("  class %s  level %s  shield %s  risk %s  takeover at %s\n",
			num(m["class_id"]), num(m["level"]), num(m["shield"]), num(m["risk_score"]), num(m["takeover_cost"]))
	}
}

func printNotifications(out map[string]any) {
	rows, _ := out["notifications"].([]any)
	if len(rows) == 0 {
		neutral.Println("no notifications")
		return
	}
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["kind"].(string)
		switch kind {
		case "taken_over", "asset_at_risk":
			danger.Printf("%-20s %v\n", kind, compactPayload(m["payload"]))
		case "level_up", "work_completed":
			success.Printf("%-20s %v\n", kind, compactPayload(m["payload"]))
		default:
			neutral.Printf("%-20s %v\n", kind, compactPayload(m["payload"]))
		}
	}
}

func printWork(out map[string]any) {
	success.Printf("worked: +%s credits\n", num(out["reward"]))
	if lvl, ok := out["leveled_up"].(bool); ok && lvl {
		accent.Println("level up!")
	}
	if broke, ok := out["streak_broken"].(bool); ok && broke {
		warn.Printf("streak reset (was %s)\n", num(out["old_streak"]))
	}
}

func printBusinessCatalog(out map[string]any) {
	rows, _ := out["businesses"].([]any)
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		neutral.Printf("%3s  %-28s %12s credits\n", num(m["id"]), str(m["name"]), num(m["cost"]))
	}
}

func printClasses(out map[string]any) {
	rows, _ := out["classes"].([]any)
	if len(rows) == 0 {
		neutral.Println("no asset classes registered")
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		a, _ := rows[i].(map[string]any)
		b, _ := rows[j].(map[string]any)
		return toFloat(a["class_id"]) < toFloat(b["class_id"])
	})
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		neutral.Printf("class %-6s base price %-12s yield %-10s scale %s/%s\n",
			num(m["class_id"]), num(m["base_price"]), num(m["base_yield"]),
			num(m["price_scale_num"]), num(m["price_scale_den"]))
	}
}

func printHolding(out map[string]any) {
	accent.Printf("class %s\n", num(out["class_id"]))
	neutral.Printf("  owner: %s\n", str(out["player"]))
	neutral.Printf("  level %s  shield %s  risk %s\n", num(out["level"]), num(out["shield"]), num(out["risk_score"]))
	neutral.Printf("  current price: %s\n", num(out["current_price"]))
	neutral.Printf("  takeover cost: %s\n", num(out["takeover_cost"]))
}

func printSwap(out map[string]any) {
	success.Printf("swapped: out %s (fee %s)\n", num(out["net_out"]), num(out["fee"]))
	neutral.Printf("price %s -> %s\n", num(out["price_before"]), num(out["price_after"]))
}

func printTreasury(out map[string]any) {
	accent.Println("treasury pool")
	neutral.Printf("  base reserve:  %s\n", num(out["base_reserve"]))
	neutral.Printf("  quote reserve: %s\n", num(out["quote_reserve"]))
	neutral.Printf("  price: %s\n", num(out["price"]))
	neutral.Printf("  fee: %s bps\n", num(out["fee_bps"]))
	if paused, ok := out["paused"].(bool); ok && paused {
		warn.Println("  trading paused")
	}
}

func printPrices(out map[string]any) {
	rows, _ := out["prices"].([]any)
	if len(rows) == 0 {
		neutral.Println("no snapshots yet")
		return
	}
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		neutral.Printf("%s  price %-12s base %-12s quote %s\n",
			str(m["tick_at"]), num(m["price_scaled"]), num(m["base_reserve"]), num(m["quote_reserve"]))
	}
}

func compactPayload(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

func num(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.0f", n)
	case json.Number:
		return n.String()
	case nil:
		return "-"
	default:
		return fmt.Sprint(v)
	}
}

func str(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return "-"
	}
	return s
}

func toFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
