package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/container"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/search"
)

const (
	failureMarker = "Failed to reconstruct."
)

func (p *Provider) compress(ctx context.Context) error {
	text, err := p.store.Get(ctx, p.config.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.config.Input, err)
	}

	var out []byte
	if p.config.Layers > 0 {
		l, err := container.Compress(text, p.config.MissingLength, p.config.Layers, p.preset.Params)
		if err != nil {
			return err
		}
		out = l.Marshal()
	} else {
		out, err = container.EncodeBlob(text, p.config.MissingLength, p.preset.Params)
		if err != nil {
			return err
		}
	}

	err = p.store.Put(ctx, p.config.Compressed, out)
	if err != nil {
		return fmt.Errorf("writing %s: %w", p.config.Compressed, err)
	}
	log.Printf("compressed %d bytes from %s into %s", len(text), p.config.Input, p.config.Compressed)

	return nil
}

// recoverTail runs one cached search. An ambiguous match is kept.
func (p *Provider) recoverTail(ctx context.Context, partial []byte, checksum string,
	params crc.Params, missingLength int) ([]byte, error) {
	message, err := p.results.Reconstitute(ctx, partial, checksum, params, missingLength)
	if err == search.ErrAmbiguous {
		log.Printf("several candidates match checksum %s, keeping %q", checksum, message)
		return message, nil
	}
	return message, err
}

func (p *Provider) reconstitute(ctx context.Context, data []byte) ([]byte, error) {
	params := p.preset.Params
	if p.config.Layers > 0 {
		l, err := container.Parse(data)
		if err != nil {
			return nil, err
		}
		if p.config.Debug {
			log.Printf("decoded layers:\n%s", spew.Sdump(l))
		}
		return container.Decompress(ctx, l, params, p.recoverTail)
	}

	b, err := container.DecodeBlob(data, params)
	if err != nil {
		return nil, err
	}
	if p.config.Debug {
		log.Printf("decoded blob:\n%s", spew.Sdump(b))
	}
	return p.recoverTail(ctx, b.Partial, b.Checksum, params, p.config.MissingLength)
}

func (p *Provider) decompress(ctx context.Context) error {
	data, err := p.store.Get(ctx, p.config.Compressed)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.config.Compressed, err)
	}

	fmt.Fprintln(p.stdout, "Attempting to reconstitute the message from the checksum...")
	message, err := p.reconstitute(ctx, data)

	var out []byte
	if errors.Is(err, search.ErrNotFound) {
		fmt.Fprintln(p.stdout, "Failed to reconstruct the message.")
		out = []byte(failureMarker)
	} else if err != nil {
		return err
	} else {
		fmt.Fprintf(p.stdout, "Reconstructed message: %s\n", message)
		out = message
	}

	err = p.store.Put(ctx, p.config.Output, out)
	if err != nil {
		return fmt.Errorf("writing %s: %w", p.config.Output, err)
	}

	return nil
}
