package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsMarkRead string

// notificationsCmd represents the notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications <user-id>",
	Short: "List a user's notifications",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifications,
}

func init() {
	rootCmd.AddCommand(notificationsCmd)

	notificationsCmd.Flags().StringVar(&notificationsMarkRead, "mark-read", "", "mark the given notification id read before listing")
}

func runNotifications(cmd *cobra.Command, args []string) error {
	_, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	if notificationsMarkRead != "" {
		if err := st.MarkNotificationRead(notificationsMarkRead); err != nil {
			return err
		}
	}

	notifications, err := st.ListNotifications(args[0])
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	for _, n := range notifications {
		read := "unread"
		if n.Read {
			read = "read"
		}
		fmt.Printf("%-36s  %-18s  %-6s  %s: %s\n", n.ID, n.Type, read, n.Title, n.Message)
	}
	return nil
}
