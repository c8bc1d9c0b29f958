package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lobstertawar/internal/domain"
	apperrors "lobstertawar/internal/errors"
	"lobstertawar/internal/inquiry"
)

func newInquireCmd(s *session) *cobra.Command {
	var form domain.InquiryForm

	cmd := &cobra.Command{
		Use:   "inquire",
		Short: "Send a purchase inquiry to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := s.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			submitter := inquiry.NewModule(s.client(log), log)
			submitter.SetForm(form)

			if err := submitter.Submit(cmd.Context()); err != nil {
				if _, ok := apperrors.IsValidationError(err); ok {
					return err
				}
				return fmt.Errorf("%s: %w", submitter.Snapshot().Status, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), submitter.Snapshot().Status)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "Customer name (required)")
	flags.StringVar(&form.Phone, "phone", "", "WhatsApp number (required)")
	flags.StringVar(&form.Email, "email", "", "Email address")
	flags.StringVar(&form.ProductID, "product-id", "", "Product the inquiry is about")
	flags.StringVar(&form.QuantityKg, "quantity", "", "Estimated quantity in kg")
	flags.StringVar(&form.Message, "message", "", "Free-form message")

	return cmd
}
