package pitch

import "context"

// FallbackPitch is returned whenever the generative backend is unreachable or
// returns an empty completion.
const FallbackPitch = "Passez à l'autonomie énergétique avec MyLight ! C'est bon pour la planète et votre portefeuille."

type Request struct {
	SponsorName string
	Tone        string
	Channel     string
}

type Provider interface {
	GeneratePitch(ctx context.Context, req Request) (string, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GeneratePitch(ctx context.Context, req Request) (string, error) {
	return FallbackPitch, nil
}
