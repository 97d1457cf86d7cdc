package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/config"
	"github.com/Aashish23092/gst-bank-api/dto"
	"github.com/Aashish23092/gst-bank-api/logger"
	"github.com/Aashish23092/gst-bank-api/utils"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	var lookup bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a GSTIN or IFSC code, optionally fetching its details",
	}
	cmd.PersistentFlags().BoolVar(&lookup, "lookup", false, "Fetch details from the provider after validating")

	cmd.AddCommand(&cobra.Command{
		Use:   "gst <gstin>",
		Short: "Check a GSTIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkGST(cmd.Context(), cmd.OutOrStdout(), v, args[0], lookup)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ifsc <ifsc>",
		Short: "Check an IFSC code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkIFSC(cmd.Context(), cmd.OutOrStdout(), v, args[0], lookup)
		},
	})

	return cmd
}

func checkGST(ctx context.Context, out io.Writer, v *viper.Viper, raw string, lookup bool) error {
	gstin := utils.NormalizeIdentifier(raw)

	if !lookup {
		resp := dto.GSTValidationResponse{GSTIN: gstin, Success: true, Valid: true, Message: utils.GSTINValidMessage}
		err := utils.ValidateGSTIN(gstin)
		if err != nil {
			resp.Success, resp.Valid, resp.Message = false, false, err.Error()
		}
		return printResult(out, resp, err)
	}

	cfg, log, err := loadCheckConfig(v)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	details, err := newLookupService(cfg, log, nil).LookupGST(ctx, gstin)
	if err != nil {
		return printResult(out, dto.Envelope{Message: lookupMessage(err)}, err)
	}
	return printResult(out, dto.Envelope{Success: true, Message: client.GSTSuccessMessage, Data: details}, nil)
}

func checkIFSC(ctx context.Context, out io.Writer, v *viper.Viper, raw string, lookup bool) error {
	ifsc := utils.NormalizeIdentifier(raw)

	if !lookup {
		resp := dto.IFSCValidationResponse{IFSC: ifsc, Success: true, Valid: true, Message: utils.IFSCValidMessage}
		err := utils.ValidateIFSC(ifsc)
		if err != nil {
			resp.Success, resp.Valid, resp.Message = false, false, err.Error()
		}
		return printResult(out, resp, err)
	}

	cfg, log, err := loadCheckConfig(v)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	details, err := newLookupService(cfg, log, nil).LookupBank(ctx, ifsc)
	if err != nil {
		return printResult(out, dto.Envelope{Message: lookupMessage(err)}, err)
	}
	return printResult(out, dto.Envelope{Success: true, Message: client.BankSuccessMessage, Data: details}, nil)
}

func loadCheckConfig(v *viper.Viper) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func lookupMessage(err error) string {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var ferr *client.FetchError
	if errors.As(err, &ferr) {
		return ferr.Message
	}
	return err.Error()
}

// printResult writes result as indented JSON and passes checkErr through
// so a failed check exits non-zero.
func printResult(out io.Writer, result interface{}, checkErr error) error {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(out, string(output))
	return checkErr
}
