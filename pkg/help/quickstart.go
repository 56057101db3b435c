package help

const QuickstartYAML = `# graphrag-prep Quick Start

pipeline:
  scrape: "Fetch pages, narrate tables, write GraphRAG-ready text files"
  search: "Query a GraphRAG service built from the scraped output"
  eval: "Score search responses against ground-truth test cases"

commands:
  basic_scrape: |
    graphrag-prep scrape --urls "https://example.com"

  batch_scrape: |
    graphrag-prep scrape --url-file pages.txt --workers 8

  refresh_stale: |
    graphrag-prep scrape --url-file pages.txt --max-age 24h

  force_rescrape: |
    graphrag-prep scrape --url-file pages.txt --force

  search_global: |
    graphrag-prep search "What are the main housing schemes available in Ireland?"

  search_local: |
    graphrag-prep search --mode local "What are the income limits for Cost Rental homes?"

  search_with_context: |
    graphrag-prep search --show-context "Find information about STAR investment scheme"

  evaluate: |
    graphrag-prep eval --cases tests/test_cases_simple.json

  evaluate_all_modes: |
    graphrag-prep eval --cases tests/test_cases_simple.json --modes "global,local,basic"

key_files:
  - "graphrag_input/{doc_id}.txt (flat text document per page)"
  - "graphrag_input/tables/{doc_id}_table_{n}.json (table sidecars)"
  - "graphrag_input/sessions/{session_id}.yaml (per-run record)"
  - "graphrag_input/sessions/index.yaml (all sessions)"

output_invariants:
  - "Same URL = same doc_id (12 hex chars), reruns overwrite in place"
  - "Table sidecars are numbered by document position: _table_0, _table_1, ..."
  - "Tables above 20 rows get sidecars but no inline markdown rendering"
  - "Session IDs: YYYY-MM-DDTHH-MM-{hash} for chronological order"

configuration:
  - "config.yaml: output_dir, workers, scrape.service_url, graphrag.base_url"
  - ".env: SCRAPE_API_KEY, GRAPHRAG_API_KEY, GRAPHRAG_BASE_URL"
  - "Flags override config; config overrides defaults"

freshness:
  - "--max-age 24h skips documents scraped within the last day"
  - "--force rescrapes everything regardless of age"
  - "Skipped documents count separately from successes in run stats"

error_behavior:
  - "Malformed URLs: fail fast before fetching"
  - "Scraping service failures fall back to direct HTTP"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
