package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jsonreq/internal/http"
	"github.com/wesleyorama2/jsonreq/internal/output"
	"github.com/wesleyorama2/jsonreq/pkg/jsonpath"
	"github.com/wesleyorama2/jsonreq/pkg/jsonschema"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [URL]",
		Short: "Send a request and print the normalized response",
		Example: `  jsonreq send https://checkip.amazonaws.com/
  jsonreq send -X POST -H 'Accept-Language: en-US' -d '{"nameSearch":"ŁUKASZ"}' https://api.example.com/prod/employees/search
  jsonreq send -f search.yaml -e name='$.employees[0].name' --schema employees.schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSend,
	}

	addRequestFlags(cmd)
	cmd.Flags().StringArrayP("extract", "e", []string{}, "Extract a value from the JSON body as name=$.json.path (can be used multiple times)")
	cmd.Flags().String("schema", "", "JSON Schema file the decoded body must satisfy")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	extractions, err := parseExtractions(cmd)
	if err != nil {
		return err
	}

	var schema []byte
	if schemaFile, _ := cmd.Flags().GetString("schema"); schemaFile != "" {
		schema, err = os.ReadFile(schemaFile)
		if err != nil {
			return &configError{fmt.Errorf("error reading schema file: %w", err)}
		}
	}

	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := http.NewClient(http.WithLogger(logger))

	resp, err := client.Send(cmd.Context(), req)
	if err != nil {
		return classifySendError(err)
	}

	out := cmd.OutOrStdout()
	noColor, _ := cmd.Flags().GetBool("no-color")
	noColor = output.NoColorFor(out, noColor)

	var extracted string
	var extractErr error
	if len(extractions) > 0 {
		var values map[string]string
		values, extractErr = jsonpath.ExtractMultiple(extractable(resp), extractions)
		extracted = formatter.FormatExtracted(values)
	}

	fmt.Fprint(out, formatter.FormatResponse(resp))
	fmt.Fprint(out, extracted)

	if extractErr != nil {
		return extractErr
	}

	if schema != nil {
		if err := jsonschema.Validate(resp.Body, schema); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s schema validation failed\n", output.ErrorIcon(noColor))
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s schema validation passed\n", output.SuccessIcon(noColor))
	}

	return nil
}

// classifySendError marks errors that came from the transport. URL, body
// encoding and body decoding failures are returned as they are.
func classifySendError(err error) error {
	var (
		decodeErr      *http.BodyDecodeError
		unsupportedTyp *json.UnsupportedTypeError
		unsupportedVal *json.UnsupportedValueError
		marshalerErr   *json.MarshalerError
	)

	switch {
	case errors.Is(err, http.ErrMalformedURL),
		errors.As(err, &decodeErr),
		errors.As(err, &unsupportedTyp),
		errors.As(err, &unsupportedVal),
		errors.As(err, &marshalerErr):
		return err
	default:
		return &transportError{err}
	}
}

// extractable returns what JSONPath expressions should run against: the
// decoded body for JSON responses, the raw text otherwise.
func extractable(resp *http.Response) interface{} {
	if text, ok := resp.Body.(string); ok && !resp.IsJSON() {
		return []byte(text)
	}
	return resp.Body
}

// parseExtractions turns name=$.path flags into a map
func parseExtractions(cmd *cobra.Command) (map[string]string, error) {
	flags, _ := cmd.Flags().GetStringArray("extract")

	extractions := make(map[string]string, len(flags))
	for _, flag := range flags {
		name, path, ok := strings.Cut(flag, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			return nil, &usageError{fmt.Errorf("invalid extraction %q, expected name=$.path", flag)}
		}
		extractions[strings.TrimSpace(name)] = strings.TrimSpace(path)
	}
	return extractions, nil
}
