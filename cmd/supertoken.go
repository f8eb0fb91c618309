// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempoworks/tempo/pkg/superadmin"
)

var superTokenSecret string

var superTokenCmd = &cobra.Command{
	Use:   "super-token",
	Short: "Mint a super channel token",
	Long:  `Mint a timestamped HMAC token for the super channel cookie. The secret must match the server's SUPER_TOKEN_SECRET.`,
	Run: func(cmd *cobra.Command, args []string) {
		verifier, err := superadmin.NewVerifier(superTokenSecret, 0)
		if err != nil {
			log.Fatalf("Failed to create verifier: %v", err)
		}

		token, err := verifier.Mint(time.Now())
		if err != nil {
			log.Fatalf("Failed to mint token: %v", err)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(superTokenCmd)

	superTokenCmd.Flags().StringVar(&superTokenSecret, "secret", "", "Shared HMAC secret")

	_ = superTokenCmd.MarkFlagRequired("secret")
}
