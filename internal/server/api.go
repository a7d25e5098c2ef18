package server

import (
	"context"

	"google.golang.org/grpc"

	"github.com/joseph-ayodele/waybill-recon/constants"
	"github.com/joseph-ayodele/waybill-recon/internal/entity"
	"github.com/joseph-ayodele/waybill-recon/internal/pipeline"
	"github.com/joseph-ayodele/waybill-recon/internal/reconcile"
)

const ServiceName = "waybillrecon.v1.ReconcileService"

const (
	methodReconcile = "/" + ServiceName + "/Reconcile"
	methodParseText = "/" + ServiceName + "/ParseText"
)

// ReconcileRequest names server-side files or directories to reconcile.
type ReconcileRequest struct {
	Paths []string `json:"paths"`
	// Format, when set, also renders the report (xlsx, csv, json, yaml, table).
	Format string `json:"format,omitempty"`
}

type ReconcileResponse struct {
	RunID       string                `json:"run_id"`
	Summary     reconcile.Summary     `json:"summary"`
	Rows        []map[string]string   `json:"rows"`
	Diagnostics []pipeline.Diagnostic `json:"diagnostics"`
	Rendered    []byte                `json:"rendered,omitempty"`
}

// ParseTextRequest parses already-extracted text without touching the disk.
type ParseTextRequest struct {
	Text string            `json:"text"`
	Kind constants.DocKind `json:"kind,omitempty"` // empty: sniff
	Name string            `json:"name,omitempty"`
}

type ParseTextResponse struct {
	Kind      constants.DocKind       `json:"kind"`
	Shipments []entity.ShipmentRecord `json:"shipments,omitempty"`
	Forms     []entity.FormRecord     `json:"forms,omitempty"`
}

// ReconcileServiceServer is the server API for the reconciliation service.
type ReconcileServiceServer interface {
	Reconcile(context.Context, *ReconcileRequest) (*ReconcileResponse, error)
	ParseText(context.Context, *ParseTextRequest) (*ParseTextResponse, error)
}

func RegisterReconcileServiceServer(s grpc.ServiceRegistrar, srv ReconcileServiceServer) {
	s.RegisterService(&ReconcileServiceDesc, srv)
}

var ReconcileServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReconcileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Reconcile", Handler: reconcileHandler},
		{MethodName: "ParseText", Handler: parseTextHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "waybillrecon/v1/reconcile.json",
}

func reconcileHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReconcileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReconcileServiceServer).Reconcile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReconcile}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReconcileServiceServer).Reconcile(ctx, req.(*ReconcileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func parseTextHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ParseTextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReconcileServiceServer).ParseText(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodParseText}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReconcileServiceServer).ParseText(ctx, req.(*ParseTextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ReconcileServiceClient calls the service with the JSON codec.
type ReconcileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReconcileServiceClient(cc grpc.ClientConnInterface) *ReconcileServiceClient {
	return &ReconcileServiceClient{cc: cc}
}

func (c *ReconcileServiceClient) Reconcile(ctx context.Context, in *ReconcileRequest, opts ...grpc.CallOption) (*ReconcileResponse, error) {
	out := new(ReconcileResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, methodReconcile, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReconcileServiceClient) ParseText(ctx context.Context, in *ParseTextRequest, opts ...grpc.CallOption) (*ParseTextResponse, error) {
	out := new(ParseTextResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, methodParseText, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
