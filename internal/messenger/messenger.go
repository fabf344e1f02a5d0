package messenger

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintbay/marketplace/internal/config"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, messages chan *sqs.Message)
	DeleteMessage(item Item, message *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	sqsClient *sqs.SQS
}

type Item string

var (
	MetadataRefresh Item = "metadata.refresh"
	MarketListed    Item = "market.listed"
	MarketSold      Item = "market.sold"
)

// Asset is the queue payload for metadata refreshes.
type Asset struct {
	AssetId uint64 `json:"assetId"`
}

func (i Item) queue() string {
	return fmt.Sprintf("%s.%s", config.Get().Index, i)
}

func NewMessenger(sqsClient *sqs.SQS) MessageService {
	return Messenger{sqsClient: sqsClient}
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqsClient.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    queueUrl,
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to send message")
		return err
	}

	zap.L().With(zap.String("queue", item.queue())).Debug("[Queue] Published message")

	return nil
}

func (m Messenger) PollMessages(item Item, messages chan *sqs.Message) {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Fatal("[Queue] Failed to resolve queue")
	}

	for {
		output, err := m.sqsClient.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            queueUrl,
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(15),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to fetch messages")
			continue
		}

		for _, message := range output.Messages {
			messages <- message
		}
	}
}

func (m Messenger) DeleteMessage(item Item, message *sqs.Message) error {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqsClient.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: message.ReceiptHandle,
	})

	return err
}

func (m Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return nil, err
	}

	attributes, err := m.sqsClient.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       queueUrl,
		AttributeNames: []*string{aws.String(sqs.QueueAttributeNameApproximateNumberOfMessages)},
	})
	if err != nil {
		return nil, err
	}

	size := 0
	if value, ok := attributes.Attributes[sqs.QueueAttributeNameApproximateNumberOfMessages]; ok {
		_, err = fmt.Sscanf(*value, "%d", &size)
	}

	return &size, err
}

func (m Messenger) getQueueUrl(item Item) (*string, error) {
	output, err := m.sqsClient.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(item.queue()),
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to get queue url")
		return nil, err
	}

	return output.QueueUrl, nil
}
