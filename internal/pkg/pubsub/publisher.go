package pubsub

import (
	"context"

	"lendsafe/internal/service/interfaces"

	"cloud.google.com/go/pubsub/v2"
)

// PublisherFactory type for creating a PubSub publisher client
type PublisherFactory interface {
	NewPublisher(ctx context.Context, projectID string) (interfaces.PubSubPublisherClientInterface, error)
}

type defaultPublisherFactory struct{}

func (f *defaultPublisherFactory) NewPublisher(ctx context.Context, projectID string) (interfaces.PubSubPublisherClientInterface, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &defaultPublisherClient{client: client}, nil
}

// defaultPublisherClient wraps the real pubsub.Client
type defaultPublisherClient struct {
	client *pubsub.Client
}

func (p *defaultPublisherClient) Publisher(topic string) interfaces.PublisherInterface {
	return &defaultTopicPublisher{
		topic:  topic,
		client: p.client,
	}
}

func (p *defaultPublisherClient) Close() error {
	return p.client.Close()
}

// defaultTopicPublisher wraps the real topic publisher
type defaultTopicPublisher struct {
	topic  string
	client *pubsub.Client
}

func (tp *defaultTopicPublisher) Publish(ctx context.Context, msg []byte) error {
	publisher := tp.client.Publisher(tp.topic)

	res := publisher.Publish(ctx, &pubsub.Message{Data: msg})

	// Wait for the publish to complete
	if _, err := res.Get(ctx); err != nil {
		return err
	}
	return nil
}

// PubSubPublisher manages publishing to one Google Cloud Pub/Sub topic
type PubSubPublisher struct {
	client interfaces.PubSubPublisherClientInterface
	topic  string
}

// NewPubSubPublisher uses the default factory
func NewPubSubPublisher(ctx context.Context, projectID string, topic string) (*PubSubPublisher, error) {
	return NewPubSubPublisherWithFactory(ctx, projectID, topic, &defaultPublisherFactory{})
}

func NewPubSubPublisherWithFactory(
	ctx context.Context,
	projectID string,
	topic string,
	factory PublisherFactory,
) (*PubSubPublisher, error) {
	client, err := factory.NewPublisher(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &PubSubPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends a single message to the configured topic
func (p *PubSubPublisher) Publish(ctx context.Context, msg []byte) error {
	return p.client.Publisher(p.topic).Publish(ctx, msg)
}

// Close closes the publisher and releases resources
func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}
