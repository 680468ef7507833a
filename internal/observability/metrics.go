package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealfinder_searches_total",
			Help: "Total searches processed",
		},
	)

	ScrapedProductsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealfinder_scraped_products_total",
			Help: "Total products scraped per source",
		},
		[]string{"source"},
	)

	ScrapeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealfinder_scrape_errors_total",
			Help: "Total scrape failures per source",
		},
		[]string{"source"},
	)

	BestDealsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealfinder_best_deals_total",
			Help: "Total best deals identified",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		SearchesTotal,
		ScrapedProductsTotal,
		ScrapeErrorsTotal,
		BestDealsTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
