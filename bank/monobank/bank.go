package monobank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/w-h-a/monobank/bank"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tokenHeader = "X-Token"

	clientInfoPath = "/personal/client-info"
	statementPath  = "/personal/statement/%s/%d/%d"

	tracerName = "github.com/w-h-a/monobank/bank/monobank"

	defaultUserAgent = "monobank-tools"
)

type monobankBank struct {
	options   bank.Options
	client    *http.Client
	tracer    trace.Tracer
	userAgent string
}

func (b *monobankBank) ClientInfo(ctx context.Context) (bank.ClientInfo, error) {
	ctx, span := b.tracer.Start(ctx, "monobank.ClientInfo")
	defer span.End()

	body, err := b.get(ctx, bank.OpClientInfo, clientInfoPath)
	if err != nil {
		recordError(span, err)
		return bank.ClientInfo{}, err
	}

	info, err := bank.ParseClientInfo(body)
	if err != nil {
		recordError(span, err)
		slog.ErrorContext(ctx, "monobank client info failed validation", "error", err)
		return bank.ClientInfo{}, err
	}

	span.SetAttributes(
		attribute.Int("monobank.accounts", len(info.Accounts)),
		attribute.Int("monobank.jars", len(info.Jars)),
	)

	return info, nil
}

func (b *monobankBank) Statement(ctx context.Context, req bank.StatementRequest) ([]bank.Transaction, error) {
	ctx, span := b.tracer.Start(ctx, "monobank.Statement")
	defer span.End()

	accountId := strings.TrimSpace(req.AccountID)
	if len(accountId) == 0 {
		accountId = bank.DefaultAccount
	}

	to := req.To
	if to == 0 {
		to = b.options.Clock().Unix()
	}

	span.SetAttributes(
		attribute.Int64("monobank.statement.from", req.From),
		attribute.Int64("monobank.statement.to", to),
	)

	body, err := b.get(ctx, bank.OpStatement, fmt.Sprintf(statementPath, url.PathEscape(accountId), req.From, to))
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	items, err := bank.ParseStatement(body)
	if err != nil {
		recordError(span, err)
		slog.ErrorContext(ctx, "monobank statement failed validation", "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("monobank.statement.items", len(items)))

	return bank.TransformAll(items), nil
}

func (b *monobankBank) get(ctx context.Context, op string, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		b.options.BaseURL+path,
		nil,
	)
	if err != nil {
		return nil, &bank.ConnectionError{Op: op, Err: err}
	}

	req.Header.Set(tokenHeader, b.options.Token.Reveal())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)

	rsp, err := b.client.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reach monobank api", "op", op, "error", err)
		return nil, &bank.ConnectionError{Op: op, Err: err}
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, &bank.ConnectionError{Op: op, Err: err}
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		upErr := &bank.UpstreamError{
			Op:          op,
			StatusCode:  rsp.StatusCode,
			Description: gjson.GetBytes(body, "errorDescription").String(),
		}
		slog.WarnContext(ctx, "monobank api rejected request", "op", op, "status", rsp.StatusCode, "description", upErr.Description)
		return nil, upErr
	}

	return body, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("monobank.error.kind", string(bank.KindOf(err))))
}

func NewBank(opts ...bank.Option) bank.Bank {
	options := bank.NewOptions(opts...)

	b := &monobankBank{
		options:   options,
		tracer:    otel.Tracer(tracerName),
		userAgent: defaultUserAgent,
	}

	if ua, ok := UserAgentFrom(options.Context); ok && len(ua) > 0 {
		b.userAgent = ua
	}

	b.options.BaseURL = strings.TrimRight(options.BaseURL, "/")

	b.client = &http.Client{
		Transport: otelhttp.NewTransport(options.Transport),
	}

	return b
}
