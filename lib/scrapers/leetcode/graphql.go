package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type graphqlRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func (c *Client) graphql(ctx context.Context, name, query string, variables, output any) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	span.SetAttributes(attribute.KeyValue{
		Key:   "name",
		Value: attribute.StringValue(name),
	})
	serialized, err := json.Marshal(variables)
	if err == nil {
		span.SetAttributes(attribute.KeyValue{
			Key:   "variables",
			Value: attribute.StringValue(string(serialized)),
		})
	}

	body, err := json.Marshal(graphqlRequest{
		OperationName: name,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize json query")
		return err
	}

	err = c.gate.wait(ctx)
	if err != nil {
		return err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Post("/graphql")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return fmt.Errorf("%w: %s", ErrTransient, err)
	}

	switch status := res.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		span.SetStatus(codes.Error, "rejected credential")
		return fmt.Errorf("%w: status %d", ErrAuthentication, status)
	case status == http.StatusTooManyRequests || status >= 500:
		span.SetStatus(codes.Error, "server unavailable")
		return fmt.Errorf("%w: status %d", ErrTransient, status)
	case status != http.StatusOK:
		span.SetStatus(codes.Error, "unexpected status")
		return fmt.Errorf("graphql %s returned status %d", name, status)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	err = json.Unmarshal(res.Body(), &envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return err
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		span.SetStatus(codes.Error, "graphql errors")
		return fmt.Errorf("graphql %s: %s", name, strings.Join(messages, "; "))
	}

	err = json.Unmarshal(envelope.Data, output)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse data payload")
		return err
	}

	return nil
}
