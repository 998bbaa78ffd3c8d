package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// NewProfileCommand creates the profile command.
func NewProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Aliases: []string{"me"},
		Short:   "Show wallet profile",
		Long:    "Display authentication, contract and user settings of the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			profile, err := client.ProfileInfo(cmd.Context())
			if err != nil {
				return describeError("failed to get profile", err)
			}

			return outputProfile(cmd.OutOrStdout(), profile)
		},
	}
}

func outputProfile(w io.Writer, profile *qiwi.ProfileInfo) error {
	done, err := renderStructured(w, profile)
	if done {
		return err
	}

	return renderKeyValueTable(w, profileRows(profile))
}

func profileRows(profile *qiwi.ProfileInfo) [][2]string {
	var rows [][2]string

	if auth := profile.AuthInfo; auth != nil {
		rows = append(rows,
			[2]string{"Person ID", strconv.FormatUint(auth.PersonID, 10)},
			[2]string{"Bound Email", valueOrNA(auth.BoundEmail)},
			[2]string{"Last Login IP", auth.IPAddress},
		)

		if auth.LastLoginDate != nil {
			rows = append(rows, [2]string{"Last Login", auth.LastLoginDate.Format(dateLayout)})
		}

		if auth.RegistrationDate != nil {
			rows = append(rows, [2]string{"Registered", auth.RegistrationDate.Format(dateLayout)})
		}
	}

	if contract := profile.ContractInfo; contract != nil {
		rows = append(rows,
			[2]string{"Contract ID", strconv.FormatUint(contract.ContractID, 10)},
			[2]string{"Blocked", strconv.FormatBool(contract.Blocked)},
		)

		levels := make([]string, 0, len(contract.IdentificationInfo))
		for _, info := range contract.IdentificationInfo {
			levels = append(levels, fmt.Sprintf("%s: %s", info.BankAlias, info.IdentificationLevel))
		}

		if len(levels) > 0 {
			rows = append(rows, [2]string{"Identification", strings.Join(levels, ", ")})
		}
	}

	if user := profile.UserInfo; user != nil {
		rows = append(rows,
			[2]string{"Default Currency", user.DefaultPayCurrency.String()},
			[2]string{"Email", valueOrNA(user.Email)},
			[2]string{"Language", user.Language},
			[2]string{"Operator", user.Operator},
		)
	}

	return rows
}
