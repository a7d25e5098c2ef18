package server

import (
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/ingest"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
	"github.com/joseph-ayodele/waybill-recon/internal/textextract"
)

const guidesText = `ORIGIN ID:BOGA
FEDEX
SHIP DATE: 15MAR24
SOLIDEO S.A.S.
(US)
TRK# 883712345678
FMM552233
INV ZFFE100
ORIGIN ID:BOGA
FEDEX
TRK# 883799999999
`

const formText = "FORMULARIO No. No. 552233\n" +
	"1. USUARIO: SOLIDEO SAS, NIT\n" +
	"22. País Destino: 249 ESTADOS UNIDOS\n" +
	"DETALLE DE LOS ANEXOS\n" +
	"6,FACTURA,ZFFE100\n" +
	"127,GUIAS,883712345678,2024/03/15\n" +
	"127,GUIAS,883700000002,2024/03/15\n"

func newClient(t *testing.T) *ReconcileServiceClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	proc := pipeline.NewProcessor(textextract.NewExtractor(textextract.Config{}, logger), logger, pipeline.WithWorkers(2))
	svc := NewReconcileService(proc, ingest.NewFSIngestor(true, logger), nil, logger)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterReconcileServiceServer(srv, svc)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewReconcileServiceClient(conn)
}

func TestReconcileOverGRPC(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guias.txt"), []byte(guidesText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fmm.csv"), []byte(formText), 0o644))

	client := newClient(t)
	resp, err := client.Reconcile(context.Background(), &ReconcileRequest{Paths: []string{dir}, Format: "csv"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 3, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.OnlyGuide)
	assert.Equal(t, 1, resp.Summary.OnlyForm)
	assert.Equal(t, 1, resp.Summary.OK+resp.Summary.Discrepancies)
	assert.Len(t, resp.Rows, 3)
	assert.NotEmpty(t, resp.Rendered)
}

func TestReconcileRejectsBadRequests(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	_, err := client.Reconcile(ctx, &ReconcileRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Reconcile(ctx, &ReconcileRequest{Paths: []string{t.TempDir()}, Format: "pdf"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Reconcile(ctx, &ReconcileRequest{Paths: []string{filepath.Join(t.TempDir(), "missing")}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestParseText(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	resp, err := client.ParseText(ctx, &ParseTextRequest{Text: guidesText, Name: "guias.txt"})
	require.NoError(t, err)
	assert.Equal(t, constants.DocWaybill, resp.Kind)
	require.Len(t, resp.Shipments, 2)
	assert.Equal(t, "883712345678", resp.Shipments[0].TrackingID)

	resp, err = client.ParseText(ctx, &ParseTextRequest{Text: formText, Kind: constants.DocForm})
	require.NoError(t, err)
	assert.Len(t, resp.Forms, 2)

	_, err = client.ParseText(ctx, &ParseTextRequest{Text: "  "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
