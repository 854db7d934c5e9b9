package sqsqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"walink/internal/domain"
)

const (
	EventLinkIssued = "link.issued"

	defaultGroupBuckets = 64
)

// SendAPI is the subset of *sqs.Client the producer needs.
type SendAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type Producer struct {
	SQS      SendAPI
	QueueURL string
	// GroupBuckets spreads FIFO message groups; ignored for standard queues.
	GroupBuckets int
}

func (p *Producer) PublishLinkIssued(ctx context.Context, ev domain.LinkIssued) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	in := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: str(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {DataType: str("String"), StringValue: str(EventLinkIssued)},
			"kind":  {DataType: str("String"), StringValue: str(string(ev.Kind))},
		},
	}
	if strings.HasSuffix(p.QueueURL, ".fifo") {
		in.MessageGroupId = str(messageGroupIDBucketed(string(ev.Kind), ev.Phone, p.GroupBuckets))
		in.MessageDeduplicationId = str(ev.ID)
	}

	_, err = p.SQS.SendMessage(ctx, in)
	return err
}

// messageGroupIDBucketed keeps events for one phone ordered without putting
// every event of a kind into a single FIFO group.
func messageGroupIDBucketed(kind, phone string, buckets int) string {
	if buckets <= 0 {
		buckets = defaultGroupBuckets
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(phone))
	return fmt.Sprintf("%s:%d", kind, h.Sum32()%uint32(buckets))
}

func str(s string) *string { return &s }
