package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csfix/internal/rule"
	"csfix/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("level", "", "only rules of this level (psr0|psr1|psr2|symfony|all|contrib)")
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Priority    int    `json:"priority"`
	Description string `json:"description"`
}

var ruleNameColor = color.New(color.Bold)

func runRules(cmd *cobra.Command, args []string) error {
	levelFlag, err := cmd.Flags().GetString("level")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	list := rules.Catalogue()
	if levelFlag != "" {
		lvl, err := rule.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		list = rules.Default().Select(rule.Selection{Level: lvl})
	} else {
		rule.SortByPriority(list)
	}

	infos := make([]ruleInfo, len(list))
	for i, r := range list {
		infos[i] = ruleInfo{Name: r.Name(), Level: r.Level().String(), Priority: r.Priority(), Description: r.Description()}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
		printRules(cmd.OutOrStdout(), infos)
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

func printRules(out io.Writer, infos []ruleInfo) {
	nameWidth, levelWidth := 4, 5
	for _, info := range infos {
		nameWidth = max(nameWidth, len(info.Name))
		levelWidth = max(levelWidth, len(info.Level))
	}
	for _, info := range infos {
		name := info.Name + strings.Repeat(" ", nameWidth-len(info.Name))
		fmt.Fprintf(out, "%s  %-*s  %4d  %s\n", ruleNameColor.Sprint(name), levelWidth, info.Level, info.Priority, info.Description)
	}
}
