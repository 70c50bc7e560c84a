package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"

	_ "pathfinder/docs"
	"pathfinder/pkg/datastructure"
	"pathfinder/pkg/engine/routebuilder"
	"pathfinder/pkg/engine/routingalgorithm"
	"pathfinder/pkg/kv"
	"pathfinder/pkg/osmparser"
	"pathfinder/pkg/server/rest"
	"pathfinder/pkg/server/rest/service"
	"pathfinder/pkg/snap"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mymiddleware "pathfinder/pkg/server/middleware"
)

var (
	listenAddr   = flag.String("listenaddr", ":5000", "server listen address")
	mapFile      = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf file for the road network graph")
	place        = flag.String("place", "Surakarta, Indonesia", "place name, used as graph cache key")
	travelMode   = flag.String("mode", "car", "travel mode the graph is built for: car, walk, or bike")
	cacheDir     = flag.String("cachedir", "./pathfinder.db", "badger directory for the graph cache")
	rebuildCache = flag.Bool("rebuild", false, "invalidate the cached graph and reparse the pbf file")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

//	@title			pathfinder API
//	@version		1.0
//	@description	A* route finding engine over openstreetmap road networks

//	@description	snaps coordinates to the road network, searches the shortest path with A*, and reports distance and traffic-adjusted travel time estimates

//	@host		localhost:5000
//	@BasePath	/api
//	@schemes	http
func main() {
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*cacheDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	cache := kv.NewGraphCache(db)

	mode, err := datastructure.ParseTravelMode(*travelMode)
	if err != nil {
		log.Fatal(err)
	}

	graph, err := loadGraph(cache, osmparser.NetworkTypeForMode(mode))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("road network ready: %d nodes, %d edges", graph.GetNumNodes(), graph.GetNumEdges())

	log.Printf("building spatial index...")
	snapper := snap.NewNodeSnapper(graph.Nodes)

	routingAlgorithm := routingalgorithm.NewRouteAlgorithm(graph)
	builder := routebuilder.NewRouteBuilder(graph)
	navigatorSvc := service.NewNavigationService(snapper, routingAlgorithm, builder)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if *useRateLimit {
		r.Use(mymiddleware.Limit)
	}

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	rest.NavigatorRouter(r, navigatorSvc)

	fmt.Printf("\nA* routing engine ready!!")
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}

// loadGraph reuses the cached graph for (place, network) when present,
// otherwise parses the pbf extract and stores the result for the next boot.
func loadGraph(cache *kv.GraphCache, networkType string) (*datastructure.Graph, error) {
	if *rebuildCache {
		if err := cache.Invalidate(*place, networkType); err != nil {
			return nil, err
		}
	}

	graph, err := cache.Get(*place, networkType)
	if err == nil {
		log.Printf("loaded cached road network for %s (%s)", *place, networkType)
		return graph, nil
	}
	if !errors.Is(err, kv.ErrGraphNotCached) {
		return nil, err
	}

	log.Printf("parsing road network for %s (%s) from %s...", *place, networkType, *mapFile)
	parser, err := osmparser.NewOsmParser(networkType)
	if err != nil {
		return nil, err
	}
	graph, err = parser.Parse(context.Background(), *mapFile)
	if err != nil {
		return nil, err
	}

	// extracts carry small disconnected fragments near the clip boundary;
	// route only over the largest strongly connected component.
	graph, err = datastructure.LargestComponentSubgraph(graph)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(*place, networkType, graph); err != nil {
		return nil, err
	}
	return graph, nil
}
