package main

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"whocall-bot/api/internal/phone"
)

func lookupCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "lookup <number>...",
		Short:   "Prints the bot's report for each number without contacting Telegram",
		Example: "  whocall lookup 998901234567 +14155552671",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, ok := phone.LocaleFor(lang)
			if !ok {
				return errors.Errorf("unsupported language %q: want zh or en", lang)
			}

			c := phone.New(phone.Options{Language: phone.DefaultLanguage})
			out := cmd.OutOrStdout()
			for i, arg := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}
				res := c.Classify(phone.Normalize(strings.TrimSpace(arg)))
				fmt.Fprintln(out, phone.FormatReply(res, locale))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "zh", "reply language: zh or en")
	return cmd
}
