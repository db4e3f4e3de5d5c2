package main

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

var completionScripts = map[string]func(io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate a shell completion script",
	Long: `Generate a completion script for bash, zsh, fish or powershell.

File arguments of check, tokens, export and watch complete to .cbml files
and directories.

  source <(cbml completion bash)
  cbml completion zsh > "${fpath[1]}/_cbml"
  cbml completion fish > ~/.config/fish/completions/cbml.fish
  cbml completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: shells(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Must work without a readable config file.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionScripts[args[0]](cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	for _, c := range []*cobra.Command{checkCmd, tokensCmd, exportCmd, watchCmd} {
		c.ValidArgsFunction = completeCBMLFiles
	}
	_ = exportCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	_ = checkCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"text", "json", "github"}, cobra.ShellCompDirectiveNoFileComp))
	_ = checkCmd.MarkFlagDirname("base-dir")
	_ = exportCmd.MarkFlagDirname("base-dir")
}

func shells() []string {
	names := make([]string, 0, len(completionScripts))
	for name := range completionScripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func completeCBMLFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"cbml"}, cobra.ShellCompDirectiveFilterFileExt
}
