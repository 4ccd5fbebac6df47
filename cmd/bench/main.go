// Bench harness: chạy engine trên một tập địa chỉ có nhãn, in accuracy theo
// từng cấp và phân phối latency. Dùng để so tham số matcher trước khi deploy.
//
// Dataset là file NDJSON, mỗi dòng một case:
//
//	{"text": "xa thinh son h do luong nghe an", "province_id": 40, "district_id": 413, "ward_id": 17539}
//
// ID 0 nghĩa là cấp đó không có trong nhãn và không được chấm.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/address-classifier/internal/gazetteer"
	"github.com/address-classifier/internal/matcher"
	"github.com/address-classifier/internal/normalizer"
	"go.uber.org/zap"
)

type labeledCase struct {
	Text       string `json:"text"`
	ProvinceID int    `json:"province_id"`
	DistrictID int    `json:"district_id"`
	WardID     int    `json:"ward_id"`
}

func main() {
	gazPath := flag.String("gazetteer", "data/gazetteer.json", "đường dẫn file gazetteer JSON")
	dataPath := flag.String("data", "data/labeled.ndjson", "đường dẫn dataset NDJSON có nhãn")
	repeat := flag.Int("repeat", 1, "số lần lặp dataset (đo latency ổn định hơn)")
	flag.Parse()

	logger := zap.NewNop()

	tn := normalizer.NewTextNormalizer()
	gaz, err := gazetteer.Load(*gazPath, tn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lỗi load gazetteer: %v\n", err)
		os.Exit(1)
	}

	cfg := matcher.DefaultConfig()
	cfg.CacheSize = 0 // đo engine trần, không cache
	engine, err := matcher.New(gaz, tn, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lỗi build engine: %v\n", err)
		os.Exit(1)
	}

	cases, err := loadCases(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lỗi load dataset: %v\n", err)
		os.Exit(1)
	}
	if len(cases) == 0 {
		fmt.Fprintln(os.Stderr, "dataset rỗng")
		os.Exit(1)
	}

	var (
		latencies      []time.Duration
		provinceOK     int
		districtOK     int
		wardOK         int
		provinceTotal  int
		districtTotal  int
		wardTotal      int
		fullOK         int
		fullTotal      int
		methodCounts   = map[string]int{}
		worstLatency   time.Duration
		worstCaseInput string
	)

	for r := 0; r < *repeat; r++ {
		for _, tc := range cases {
			start := time.Now()
			result := engine.Classify(tc.Text)
			elapsed := time.Since(start)

			latencies = append(latencies, elapsed)
			if elapsed > worstLatency {
				worstLatency = elapsed
				worstCaseInput = tc.Text
			}

			// Chỉ chấm accuracy ở lần lặp đầu
			if r > 0 {
				continue
			}
			methodCounts[string(result.Method)]++

			if tc.ProvinceID != 0 {
				provinceTotal++
				if result.Province != nil && result.Province.ID == tc.ProvinceID {
					provinceOK++
				}
			}
			if tc.DistrictID != 0 {
				districtTotal++
				if result.District != nil && result.District.ID == tc.DistrictID {
					districtOK++
				}
			}
			if tc.WardID != 0 {
				wardTotal++
				if result.Ward != nil && result.Ward.ID == tc.WardID {
					wardOK++
				}
			}
			if tc.ProvinceID != 0 && tc.DistrictID != 0 && tc.WardID != 0 {
				fullTotal++
				if result.Province != nil && result.Province.ID == tc.ProvinceID &&
					result.District != nil && result.District.ID == tc.DistrictID &&
					result.Ward != nil && result.Ward.ID == tc.WardID {
					fullOK++
				}
			}
		}
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	fmt.Printf("Gazetteer: %d tỉnh, %d huyện, %d xã (version %s)\n",
		len(gaz.Provinces), len(gaz.Districts), len(gaz.Wards), gaz.Version)
	fmt.Printf("Dataset:   %d cases x %d lần\n\n", len(cases), *repeat)

	fmt.Println("Accuracy:")
	printAccuracy("  province", provinceOK, provinceTotal)
	printAccuracy("  district", districtOK, districtTotal)
	printAccuracy("  ward    ", wardOK, wardTotal)
	printAccuracy("  full    ", fullOK, fullTotal)

	fmt.Println("\nMethod:")
	for _, m := range []string{"exact", "lcs", "edit_distance", "none"} {
		fmt.Printf("  %-13s %d\n", m, methodCounts[m])
	}

	fmt.Println("\nLatency:")
	fmt.Printf("  p50  %v\n", percentile(latencies, 0.50))
	fmt.Printf("  p95  %v\n", percentile(latencies, 0.95))
	fmt.Printf("  p99  %v\n", percentile(latencies, 0.99))
	fmt.Printf("  max  %v  (%q)\n", worstLatency, worstCaseInput)
}

func loadCases(path string) ([]labeledCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []labeledCase
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var tc labeledCase
		if err := json.Unmarshal(text, &tc); err != nil {
			return nil, fmt.Errorf("dòng %d: %w", line, err)
		}
		cases = append(cases, tc)
	}
	return cases, scanner.Err()
}

func printAccuracy(label string, ok, total int) {
	if total == 0 {
		fmt.Printf("%s  n/a\n", label)
		return
	}
	fmt.Printf("%s  %.2f%% (%d/%d)\n", label, 100*float64(ok)/float64(total), ok, total)
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
