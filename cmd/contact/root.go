package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agentic-landing-site/config"
	"agentic-landing-site/internal/domain"
	"agentic-landing-site/internal/repository/contactapi"
	"agentic-landing-site/internal/usecase"
	"agentic-landing-site/pkg/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errNotSent makes the process exit non-zero after the result was printed
var errNotSent = errors.New("message not sent")

type sendOptions struct {
	baseURL  string
	noPrompt bool
	verbose  bool
	fields   map[domain.FormField]*string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contact",
		Short:         "Send messages through the site contact backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSendCmd(os.Stdin, os.Stdout, os.Stderr))
	return root
}

func newSendCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &sendOptions{fields: make(map[domain.FormField]*string, len(domain.FormFields))}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fill in the contact form and submit it",
		Example: `  contact send --name Ada --email ada@example.com --subject Hi --message "Hello there"
  CONTACT_API_BASE_URL=https://api.example.com contact send`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSend(ctx, opts, in, out, errOut)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "base-url", config.LoadContactAPIBaseURL(), "contact backend base URL (env CONTACT_API_BASE_URL)")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "never ask for missing fields")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log transport errors to stderr")
	bindFieldFlags(flags, opts.fields)
	return cmd
}

// bindFieldFlags adds one string flag per form input
func bindFieldFlags(flags *pflag.FlagSet, values map[domain.FormField]*string) {
	usage := map[domain.FormField]string{
		domain.FieldName:    "your name",
		domain.FieldEmail:   "your email address",
		domain.FieldSubject: "message subject",
		domain.FieldMessage: "message body",
	}
	for _, field := range domain.FormFields {
		values[field] = flags.String(string(field), "", usage[field])
	}
}

func runSend(ctx context.Context, opts *sendOptions, in io.Reader, out, errOut io.Writer) error {
	logLevel := slog.LevelError + 1 // silent unless verbose
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: logLevel}))

	gateway := contactapi.NewGateway(opts.baseURL, &http.Client{})
	form := usecase.NewContactForm(gateway, log, nil)

	prompter := newPrompter(in, out, errOut, !opts.noPrompt)
	for _, field := range domain.FormFields {
		value := *opts.fields[field]
		if value == "" && prompter.enabled() {
			var err error
			value, err = prompter.ask(field)
			if err != nil {
				return fmt.Errorf("read %s: %w", field, err)
			}
		}
		if err := form.OnFieldChange(field, value); err != nil {
			return err
		}
	}

	validate := validation.New()
	result, err := form.SubmitChecked(ctx, func(state domain.FormState) error {
		return usecase.ValidateFormState(validate, state)
	})
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		for _, msg := range vErr.Messages {
			fmt.Fprintln(errOut, msg)
		}
		return errNotSent
	}
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		fmt.Fprintln(errOut, result.Message)
		return errNotSent
	}
	fmt.Fprintln(out, result.Message)
	return nil
}
