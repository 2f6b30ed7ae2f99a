package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"honeypot-agent/internal/domain"
)

type stubDynamo struct {
	err    error
	lastIn *dynamodb.PutItemInput
}

func (s *stubDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func testReport() domain.FinalReport {
	return domain.FinalReport{
		SessionID:              "t1",
		ScamDetected:           true,
		TotalMessagesExchanged: 4,
		ExtractedIntelligence: domain.Intelligence{
			UPIIDs:             []string{"recovery@ybl"},
			PhishingLinks:      []string{"bit.ly/kyc123"},
			SuspiciousKeywords: []string{"urgent"},
		},
		AgentNotes: "risk score 100, stage CONFIRMED",
	}
}

func strAttr(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %q must be a string", key)
	return v.Value
}

func TestNewReportStore_ValidatesArgs(t *testing.T) {
	_, err := NewReportStore(nil, "reports")
	require.Error(t, err)
	_, err = NewReportStore(&stubDynamo{}, " ")
	require.Error(t, err)
}

func TestDeliver_WritesReportItem(t *testing.T) {
	api := &stubDynamo{}
	s, err := NewReportStore(api, "honeypot-reports")
	require.NoError(t, err)
	fixed := time.Date(2026, 2, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Deliver(context.Background(), testReport()))
	require.NotNil(t, api.lastIn)
	require.Equal(t, "honeypot-reports", *api.lastIn.TableName)

	item := api.lastIn.Item
	require.Equal(t, "SESSION#t1", strAttr(t, item, "PK"))
	require.Equal(t, "REPORT#"+fixed.Format(time.RFC3339Nano), strAttr(t, item, "SK"))
	require.Equal(t, "t1", strAttr(t, item, "sessionId"))

	detected, ok := item["scamDetected"].(*types.AttributeValueMemberBOOL)
	require.True(t, ok)
	require.True(t, detected.Value)

	upis, ok := item["upiIds"].(*types.AttributeValueMemberL)
	require.True(t, ok)
	require.Len(t, upis.Value, 1)

	ttl, ok := item["ttl"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	require.NotEmpty(t, ttl.Value)
}

func TestDeliver_EmptySessionID(t *testing.T) {
	s, err := NewReportStore(&stubDynamo{}, "reports")
	require.NoError(t, err)

	report := testReport()
	report.SessionID = ""
	require.Error(t, s.Deliver(context.Background(), report))
}

func TestDeliver_PropagatesPutError(t *testing.T) {
	s, err := NewReportStore(&stubDynamo{err: errors.New("throttled")}, "reports")
	require.NoError(t, err)
	require.Error(t, s.Deliver(context.Background(), testReport()))
}
