package main

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/tutorlog/tutorlog/pkg/client/tutorlog"
)

func makeDumpPaymentsCommand() *cobra.Command {
	var pupil uint

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Dump payments of a pupil",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpPayments(pupil)
		},
	}

	cmd.Flags().UintVar(&pupil, "pupil", 0, "Pupil id")
	check(cmd.MarkFlagRequired("pupil"))

	return cmd
}

func dumpPayments(pupil uint) error {
	tl, err := tutorlog.NewClient(endpoint, userID)
	if err != nil {
		return err
	}

	payments, err := tl.ListPupilPayments(pupil)
	if err != nil {
		return err
	}

	for _, payment := range payments {
		fmt.Printf("#%d\t%02d/%04d\t%s\t%s\tpaid %s ago\n",
			payment.ID, payment.Month, payment.Year,
			payment.Amount, payment.PaymentMode,
			units.HumanDuration(time.Since(payment.PaymentDate)))
	}

	return nil
}
