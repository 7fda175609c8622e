package main

import (
	"fmt"
	"strings"

	"github.com/erauner12/showcase/internal/client"
	"github.com/spf13/cobra"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := client.NewChatClient(a.http).Send(cmd.Context(), strings.Join(args, " "))
			if reply != "" {
				fmt.Fprintln(cmd.OutOrStdout(), reply)
			}
			return err
		},
	}
}

func newContactCmd(a *app) *cobra.Command {
	var msg client.ContactMessage

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmation, err := client.NewChatClient(a.http).Contact(cmd.Context(), msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), confirmation)
			return nil
		},
	}
	cmd.Flags().StringVar(&msg.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "Your email address")
	cmd.Flags().StringVar(&msg.Message, "message", "", "The message")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
