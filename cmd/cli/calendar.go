package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorlog/tutorlog/pkg/client/tutorlog"
)

func makeCalendarCommand() *cobra.Command {
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Dump the expanded calendar for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpCalendar(from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD, defaults to current month)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, defaults to current month)")

	return cmd
}

func dumpCalendar(from, to string) error {
	tl, err := tutorlog.NewClient(endpoint, userID)
	if err != nil {
		return err
	}

	instances, err := tl.LoadCalendar(from, to)
	if err != nil {
		return err
	}

	for _, instance := range instances {
		marker := " "
		if instance.IsRepeatInstance {
			marker = "*"
		}
		fmt.Printf("%s %s - %s\t%s\n",
			marker,
			instance.StartTime.Format("2006-01-02 15:04"),
			instance.EndTime.Format("15:04"),
			instance.Title)
	}

	return nil
}
