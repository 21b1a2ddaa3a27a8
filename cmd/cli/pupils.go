package main

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/tutorlog/tutorlog/pkg/client/tutorlog"
)

func makeDumpPupilsCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "pupils",
		Short: "Dump pupils",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpPupils(search)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name or email")

	return cmd
}

func dumpPupils(search string) error {
	tl, err := tutorlog.NewClient(endpoint, userID)
	if err != nil {
		return err
	}

	pupils, err := tl.ListPupils(search)
	if err != nil {
		return err
	}

	for _, pupil := range pupils {
		email := ""
		if pupil.Email != nil {
			email = *pupil.Email
		}
		fmt.Printf("#%d\t%s\t%s\tadded %s ago\n",
			pupil.ID, pupil.FullName, email,
			units.HumanDuration(time.Since(pupil.CreatedAt)))
	}

	return nil
}
