package batch

import (
	"time"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
)

// Partition делит items на последовательные батчи размера size.
//
// Порядок сохраняется, последний батч может быть короче.
// size <= 0 считается равным 1. Пустой вход даёт ноль батчей.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	if len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}

// Policy - размер батча и пауза между батчами.
type Policy struct {
	Size  int
	Delay time.Duration
}

// PolicyFor выбирает политику по включённым функциям Icon Sense.
//
//   - имя (с тегами или без) → Visual: визуальный анализ самый дорогой
//   - только теги → Text
//   - без Icon Sense → Plain
func PolicyFor(f features.Features, p config.BatchConfig) Policy {
	p = p.GetDefaults()

	var pc config.PolicyConfig
	switch {
	case f.SenseNaming:
		pc = p.Visual
	case f.SenseTagging:
		pc = p.Text
	default:
		pc = p.Plain
	}
	return Policy{Size: pc.Size, Delay: pc.Delay}
}
