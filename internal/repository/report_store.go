// Package repository persists final-result reports to DynamoDB. The
// store is write-only: request handling never reads it back, keeping
// the core stateless between requests.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"honeypot-agent/internal/domain"
)

const (
	pkPrefix       = "SESSION#"
	skPrefixReport = "REPORT#"
	ttlDuration    = 90 * 24 * time.Hour // retain evidence for 90 days
)

// dynamodbAPI is the minimal DynamoDB interface required by ReportStore.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ReportStore writes final reports to a DynamoDB table.
type ReportStore struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

func NewReportStore(api dynamodbAPI, tableName string) (*ReportStore, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &ReportStore{api: api, tableName: tableName, now: time.Now}, nil
}

func (s *ReportStore) Name() string { return "dynamodb" }

// Deliver writes one report item. Successive reports for the same
// session get distinct sort keys, so a re-emitted mission never
// overwrites earlier evidence.
func (s *ReportStore) Deliver(ctx context.Context, report domain.FinalReport) error {
	if strings.TrimSpace(report.SessionID) == "" {
		return errors.New("repository: report session id must not be empty")
	}

	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      s.reportItem(report),
	})
	if err != nil {
		return fmt.Errorf("repository: put report: %w", err)
	}
	return nil
}

func (s *ReportStore) reportItem(report domain.FinalReport) map[string]types.AttributeValue {
	now := s.now().UTC()
	return map[string]types.AttributeValue{
		"PK":            &types.AttributeValueMemberS{Value: pkPrefix + report.SessionID},
		"SK":            &types.AttributeValueMemberS{Value: skPrefixReport + now.Format(time.RFC3339Nano)},
		"sessionId":     &types.AttributeValueMemberS{Value: report.SessionID},
		"scamDetected":  &types.AttributeValueMemberBOOL{Value: report.ScamDetected},
		"totalMessages": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", report.TotalMessagesExchanged)},
		"bankAccounts":  stringListAttr(report.ExtractedIntelligence.BankAccounts),
		"upiIds":        stringListAttr(report.ExtractedIntelligence.UPIIDs),
		"phishingLinks": stringListAttr(report.ExtractedIntelligence.PhishingLinks),
		"phoneNumbers":  stringListAttr(report.ExtractedIntelligence.PhoneNumbers),
		"keywords":      stringListAttr(report.ExtractedIntelligence.SuspiciousKeywords),
		"agentNotes":    &types.AttributeValueMemberS{Value: report.AgentNotes},
		"ttl":           &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(ttlDuration).Unix())},
	}
}

func stringListAttr(values []string) types.AttributeValue {
	items := make([]types.AttributeValue, 0, len(values))
	for _, v := range values {
		items = append(items, &types.AttributeValueMemberS{Value: v})
	}
	return &types.AttributeValueMemberL{Value: items}
}
