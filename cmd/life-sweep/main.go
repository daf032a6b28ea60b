package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"sparse-life/pkg/core"
	"sparse-life/pkg/sims/life"
)

type soup struct {
	seed    int64
	size    int
	density float64
}

func (s soup) String() string {
	return fmt.Sprintf("seed=%d size=%d density=%.2f", s.seed, s.size, s.density)
}

type soupResult struct {
	soup           soup
	initialCells   int
	generations    int
	finished       bool
	population     int
	peakPopulation int
}

func main() {
	soups := flag.Int("soups", 256, "number of random soups to evaluate")
	size := flag.Int("size", 16, "soup edge length")
	density := flag.Float64("density", 0.35, "live cell density")
	firstSeed := flag.Int64("seed", 1, "seed of the first soup")
	limit := flag.Int("limit", 5000, "generations to run before giving up on a soup")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	sets := make([]soup, *soups)
	for i := range sets {
		sets[i] = soup{seed: *firstSeed + int64(i), size: *size, density: *density}
	}

	fmt.Printf("Sweeping %d soups (%d workers, limit %d generations)\n", len(sets), *workers, *limit)

	jobs := make(chan soup)
	results := make(chan soupResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runSoup(s, *limit)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []soupResult
	extinct, stable, active := 0, 0, 0
	for res := range results {
		all = append(all, res)
		switch {
		case !res.finished:
			active++
		case res.population == 0:
			extinct++
		default:
			stable++
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].finished != all[j].finished {
			return all[i].finished
		}
		if all[i].generations != all[j].generations {
			return all[i].generations > all[j].generations
		}
		return all[i].soup.seed < all[j].soup.seed
	})
	elapsed := time.Since(start)

	fmt.Printf("\nextinct=%d stable=%d still active=%d (elapsed %s)\n", extinct, stable, active, elapsed.Round(time.Millisecond))
	fmt.Printf("\nLongest-lived terminating soups:\n")
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		if !res.finished {
			break
		}
		fmt.Printf("%2d) generations=%d initial=%d final=%d peak=%d %s\n",
			i+1, res.generations, res.initialCells, res.population, res.peakPopulation, res.soup)
	}
}

func runSoup(s soup, limit int) soupResult {
	board := life.New(core.Soup(core.NewRNG(s.seed), core.Coord{}, s.size, s.size, s.density))
	res := soupResult{soup: s, initialCells: board.Population(), peakPopulation: board.Population()}

	for board.Generation() < limit && !board.Step() {
		res.peakPopulation = max(res.peakPopulation, board.Population())
	}

	res.generations = board.Generation()
	res.finished = board.IsFinished()
	res.population = board.Population()
	return res
}
