// =============================================================================
// LIS Ticket Tracker - History Command
// =============================================================================
//
// This file defines the 'history' command and its subcommands, covering
// what the original scanned-ticket table offered: list every recorded
// ticket, edit a ticket's quantity, and delete a ticket.
//
// COMMAND USAGE:
//   listrack history                              # list all tickets
//   listrack history update <id> --quantity <n>   # edit a ticket's quantity
//   listrack history delete <id>                  # delete a ticket
//
// Tickets are addressed by the synthetic id assigned at ingestion (shown
// in the list output), which stays unambiguous even when two tickets
// carry identical field values.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"listrack/internal/ledger"
)

// historyQuantity is the new quantity for 'history update'.
var historyQuantity int

// historyCmd represents the 'history' command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, edit, or delete previously scanned tickets",
	Long: `Without a subcommand, history lists every recorded ticket in scan order.
The update and delete subcommands edit a ticket's quantity or remove a
ticket; category totals and the overall door count are reconciled
automatically.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

// historyUpdateCmd represents 'history update'.
var historyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the quantity of a recorded ticket",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryUpdate(args[0], historyQuantity)
	},
}

// historyDeleteCmd represents 'history delete'.
var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded ticket",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyUpdateCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyUpdateCmd.Flags().IntVar(
		&historyQuantity,
		"quantity",
		0,
		"New door quantity for the ticket",
	)
	historyUpdateCmd.MarkFlagRequired("quantity")
}

func runHistoryList() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	history := led.GetHistory()
	if len(history) == 0 {
		fmt.Println("No tickets recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-14s  %-5s  %-8s  %-8s  %-4s  %-19s\n",
		"ID", "Batch", "Seq#", "Order#", "Item#", "Qty", "Scan Time")
	for _, ticket := range history {
		fmt.Printf("%-36s  %-14s  %-5s  %-8s  %-8s  %-4d  %s\n",
			ticket.ID,
			ticket.BatchID,
			ticket.SequenceNumber,
			ticket.OrderNumber,
			ticket.ItemNumber,
			ticket.Quantity,
			ticket.ScanTime.Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Printf("\n%d ticket(s), %d door(s) total\n", len(history), led.GetTotal())
	return nil
}

func runHistoryUpdate(id string, quantity int) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	if err := led.UpdateQuantity(id, quantity); err != nil {
		if errors.Is(err, ledger.ErrTicketNotFound) {
			fmt.Printf("No ticket with id %s; nothing updated.\n", id)
			return nil
		}
		return err
	}

	fmt.Printf("Updated ticket %s to quantity %d. Total doors: %d\n", id, quantity, led.GetTotal())
	return nil
}

func runHistoryDelete(id string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	if err := led.DeleteTicket(id); err != nil {
		if errors.Is(err, ledger.ErrTicketNotFound) {
			fmt.Printf("No ticket with id %s; nothing deleted.\n", id)
			return nil
		}
		return err
	}

	fmt.Printf("Deleted ticket %s. Total doors: %d\n", id, led.GetTotal())
	return nil
}
