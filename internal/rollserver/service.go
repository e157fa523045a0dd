// Package rollserver exposes treasure and encounter generation over gRPC.
//
// The service speaks google.protobuf.Struct in both directions so that clients
// need no generated stubs: request and response fields mirror the JSON forms of
// the treasure and encounter types.
package rollserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hoard.v1.RollService"

const (
	methodRollLoot       = "/" + ServiceName + "/RollLoot"
	methodAppraiseGems   = "/" + ServiceName + "/AppraiseGems"
	methodAppraiseJewels = "/" + ServiceName + "/AppraiseJewels"
	methodRollEncounter  = "/" + ServiceName + "/RollEncounter"
)

// RollServiceServer is the server API for the roll service.
type RollServiceServer interface {
	// RollLoot takes {type, dragonAge} and returns an appraised hoard.
	RollLoot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// AppraiseGems takes {loot} and returns {gems, loot}.
	AppraiseGems(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// AppraiseJewels takes {loot} and returns {jewels}.
	AppraiseJewels(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// RollEncounter takes {environment, level, terrain, time, treasure} and
	// returns {encounter, description} plus {hoard} when treasure is requested.
	RollEncounter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRollServiceServer registers srv on s.
func RegisterRollServiceServer(s grpc.ServiceRegistrar, srv RollServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler(method string, call func(RollServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RollServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RollServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the roll service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RollLoot", Handler: unaryHandler(methodRollLoot, RollServiceServer.RollLoot)},
		{MethodName: "AppraiseGems", Handler: unaryHandler(methodAppraiseGems, RollServiceServer.AppraiseGems)},
		{MethodName: "AppraiseJewels", Handler: unaryHandler(methodAppraiseJewels, RollServiceServer.AppraiseJewels)},
		{MethodName: "RollEncounter", Handler: unaryHandler(methodRollEncounter, RollServiceServer.RollEncounter)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hoard/v1/roll.proto",
}

// Client calls a remote roll service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RollLoot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodRollLoot, in, opts...)
}

func (c *Client) AppraiseGems(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodAppraiseGems, in, opts...)
}

func (c *Client) AppraiseJewels(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodAppraiseJewels, in, opts...)
}

func (c *Client) RollEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodRollEncounter, in, opts...)
}
